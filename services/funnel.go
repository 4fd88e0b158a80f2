package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const (
	FUNNEL_SVC = "funnel_svc"

	DefaultDecisionLogSize = 100
	DefaultEventLogSize    = 1000

	funnelDefaultReason = "Funnel event tracked"
)

type funnelConfig struct {
	DecisionLogSize int `envconfig:"DECISION_LOG_SIZE" default:"100"`
	EventLogSize    int `envconfig:"FUNNEL_LOG_SIZE" default:"1000"`
}

// FunnelService keeps the bounded, newest-first decision log and the funnel event log.
// When the database is enabled every entry is also archived; archive failures are logged only.
type FunnelService struct {
	appContext.DefaultService

	cfg        funnelConfig
	clock      shared.Clock
	dbSvc      *DatabaseService
	monitoring *MonitoringService

	mu        sync.RWMutex
	decisions []model.DecisionLogEntry
	events    []model.FunnelEvent
	counts    map[model.FunnelEventName]int64
}

func (svc FunnelService) Id() string {
	return FUNNEL_SVC
}

func (svc *FunnelService) Configure(ctx *appContext.Context) error {
	if err := envconfig.Process("", &svc.cfg); err != nil {
		return err
	}
	svc.init()
	return svc.DefaultService.Configure(ctx)
}

func (svc *FunnelService) Start() error {
	svc.clock = svc.Service(TRACKING_SVC).(*TrackingService).Clock()
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.monitoring = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

func NewFunnelService(clock shared.Clock, decisionLogSize int) *FunnelService {
	svc := &FunnelService{
		cfg:   funnelConfig{DecisionLogSize: decisionLogSize, EventLogSize: DefaultEventLogSize},
		clock: clock,
	}
	svc.init()
	return svc
}

func (svc *FunnelService) init() {
	if svc.cfg.DecisionLogSize <= 0 {
		svc.cfg.DecisionLogSize = DefaultDecisionLogSize
	}
	if svc.cfg.EventLogSize <= 0 {
		svc.cfg.EventLogSize = DefaultEventLogSize
	}
	if svc.clock == nil {
		svc.clock = shared.SystemClock{}
	}
	svc.decisions = make([]model.DecisionLogEntry, 0, svc.cfg.DecisionLogSize)
	svc.events = make([]model.FunnelEvent, 0, svc.cfg.EventLogSize)
	svc.counts = make(map[model.FunnelEventName]int64)
}

// pushFront inserts v at the head of s and drops whatever falls past max.
func pushFront[T any](s []T, v T, max int) []T {
	if len(s) < max {
		s = append(s, v)
	}
	copy(s[1:], s[:len(s)-1])
	s[0] = v
	return s
}

// LogDecision appends entry to the decision log, stamping it when Timestamp is zero.
func (svc *FunnelService) LogDecision(entry model.DecisionLogEntry) model.DecisionLogEntry {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = svc.clock.Now()
	}

	svc.mu.Lock()
	svc.decisions = pushFront(svc.decisions, entry, svc.cfg.DecisionLogSize)
	svc.mu.Unlock()

	if svc.dbSvc.Enabled() {
		if err := svc.dbSvc.AnalyticRepository().CreateDecision(entry); err != nil {
			log.WithFields(log.Fields{"agent": entry.Agent, "action": entry.Action}).
				WithError(svc.dbSvc.HandleError(err)).Error("Failed to archive decision")
		}
	}
	return entry
}

// TrackFunnelEvent records a named funnel event. The payload is stored as JSON and echoed into
// the decision log as the reason.
func (svc *FunnelService) TrackFunnelEvent(_ context.Context, name model.FunnelEventName, payload interface{}) (*model.FunnelEvent, error) {
	if !name.Valid() {
		return nil, shared.NewBadRequestError(nil, fmt.Sprintf("unknown funnel event %q", name))
	}

	raw, err := encodePayload(payload)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "funnel payload is not valid JSON")
	}

	event := model.FunnelEvent{
		Name:      name,
		Payload:   raw,
		Timestamp: svc.clock.Now(),
	}

	svc.mu.Lock()
	svc.events = pushFront(svc.events, event, svc.cfg.EventLogSize)
	svc.counts[name]++
	svc.mu.Unlock()

	svc.monitoring.RecordFunnelEvent(string(name))

	if svc.dbSvc.Enabled() {
		if _, err := svc.dbSvc.FunnelRepository().CreateEvent(event); err != nil {
			log.WithField("event", name).WithError(svc.dbSvc.HandleError(err)).Error("Failed to archive funnel event")
		}
	}

	reason := funnelDefaultReason
	if len(raw) > 0 {
		reason = string(raw)
	}
	svc.LogDecision(model.DecisionLogEntry{
		Timestamp: event.Timestamp,
		Agent:     shared.AgentFunnel,
		Action:    string(name),
		Reason:    reason,
		Status:    model.StatusTriggered,
	})

	return &event, nil
}

func encodePayload(payload interface{}) (json.RawMessage, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if len(p) == 0 || string(p) == "null" {
			return nil, nil
		}
		if !sonic.Valid(p) {
			return nil, fmt.Errorf("invalid JSON payload")
		}
		return p, nil
	default:
		b, err := shared.Marshal(p)
		if err != nil {
			return nil, err
		}
		if string(b) == "null" {
			return nil, nil
		}
		return b, nil
	}
}

// Decisions returns up to limit entries, newest first. limit <= 0 returns the whole log.
func (svc *FunnelService) Decisions(limit int) []model.DecisionLogEntry {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return head(svc.decisions, limit)
}

func (svc *FunnelService) FunnelEvents(limit int) []model.FunnelEvent {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return head(svc.events, limit)
}

// EventsBetween returns retained events with from <= timestamp < to, oldest first.
func (svc *FunnelService) EventsBetween(from, to time.Time) []model.FunnelEvent {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	var out []model.FunnelEvent
	for i := len(svc.events) - 1; i >= 0; i-- {
		e := svc.events[i]
		if !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			out = append(out, e)
		}
	}
	return out
}

// FunnelCounts returns the count per event name since the last reset. Every name is present.
func (svc *FunnelService) FunnelCounts() map[model.FunnelEventName]int64 {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	counts := make(map[model.FunnelEventName]int64, len(model.FunnelEventNames))
	for _, name := range model.FunnelEventNames {
		counts[name] = svc.counts[name]
	}
	return counts
}

// Reset clears the in-memory logs. The database archive is left untouched.
func (svc *FunnelService) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.decisions = svc.decisions[:0]
	svc.events = svc.events[:0]
	svc.counts = make(map[model.FunnelEventName]int64)
}

func head[T any](s []T, limit int) []T {
	if limit <= 0 || limit > len(s) {
		limit = len(s)
	}
	out := make([]T, limit)
	copy(out, s[:limit])
	return out
}
