package model

type LoopType string

const (
	LoopBuddyChallenge   LoopType = "buddy_challenge"
	LoopVoiceRoomInvite  LoopType = "voice_room_invite"
	LoopTutorSpotlight   LoopType = "tutor_spotlight"
	LoopProudParentShare LoopType = "proud_parent_share"
)

var LoopTypes = []LoopType{
	LoopBuddyChallenge,
	LoopVoiceRoomInvite,
	LoopTutorSpotlight,
	LoopProudParentShare,
}

func (l LoopType) Valid() bool {
	for _, t := range LoopTypes {
		if t == l {
			return true
		}
	}
	return false
}

func ParseLoopType(s string) (LoopType, bool) {
	l := LoopType(s)
	return l, l.Valid()
}

// Events understood by the rule table.
const (
	EventSessionCompleted       = "session_completed"
	EventBuddyChallengeAccepted = "buddy_challenge_accepted"
	EventVoiceRoom15Min         = "voice_room_15_min"
)

// TriggerContext carries the event payload the rules look at.
type TriggerContext struct {
	UserID int64          `json:"user_id"`
	Event  string         `json:"event"`
	Data   map[string]any `json:"data,omitempty"`
}

// LoopTriggerDecision is produced per call and never persisted.
type LoopTriggerDecision struct {
	ShouldTrigger bool      `json:"should_trigger"`
	LoopType      *LoopType `json:"loop_type"`
	Reason        string    `json:"reason"`
	Throttled     bool      `json:"throttled"`
	Cooldown      bool      `json:"cooldown"`
}
