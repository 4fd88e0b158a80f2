package model

import (
	"encoding/json"
	"time"
)

type FunnelEventName string

const (
	FunnelLinkCreated      FunnelEventName = "link_created"
	FunnelLinkClicked      FunnelEventName = "link_clicked"
	FunnelSignup           FunnelEventName = "signup"
	FunnelSessionCompleted FunnelEventName = "session_completed"
	FunnelConversion       FunnelEventName = "conversion"
)

var FunnelEventNames = []FunnelEventName{
	FunnelLinkCreated,
	FunnelLinkClicked,
	FunnelSignup,
	FunnelSessionCompleted,
	FunnelConversion,
}

func (n FunnelEventName) Valid() bool {
	for _, name := range FunnelEventNames {
		if name == n {
			return true
		}
	}
	return false
}

type FunnelEvent struct {
	Name      FunnelEventName `json:"name"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type DecisionStatus string

const (
	StatusTriggered DecisionStatus = "triggered"
	StatusThrottled DecisionStatus = "throttled"
	StatusBlocked   DecisionStatus = "blocked"
	StatusNoAction  DecisionStatus = "no_action"
	StatusFallback  DecisionStatus = "fallback"
)

type DecisionLogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Agent     string         `json:"agent"`
	Action    string         `json:"action"`
	Reason    string         `json:"reason"`
	Status    DecisionStatus `json:"status"`
}

// FunnelEventRecord is the archived form of a FunnelEvent.
type FunnelEventRecord struct {
	ID        string          `json:"id" gorm:"primaryKey;type:text;not null"`
	Name      string          `json:"name" gorm:"not null;index;size:50"`
	Payload   json.RawMessage `json:"payload" gorm:"type:text"`
	Timestamp time.Time       `json:"timestamp" gorm:"not null;index"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null"`
}

type DecisionRecord struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Agent     string    `json:"agent" gorm:"not null;size:50"`
	Action    string    `json:"action" gorm:"not null"`
	Reason    string    `json:"reason" gorm:"type:text"`
	Status    string    `json:"status" gorm:"not null;index;size:20"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}
