package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services/store"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const (
	ORCHESTRATOR_SVC = "orchestrator_svc"

	DailyInviteCap = 3
	LoopCooldown   = 2 * time.Hour

	scoreThreshold         = 70
	minutesInRoomThreshold = 15
)

// OrchestratorService decides whether a viral loop fires. Each user has a daily cap shared
// by all loop types and a cooldown per loop type.
type OrchestratorService struct {
	appContext.DefaultService

	dailyCap int64
	cooldown time.Duration

	tracking   *TrackingService
	funnelSvc  *FunnelService
	monitoring *MonitoringService
}

func (svc OrchestratorService) Id() string {
	return ORCHESTRATOR_SVC
}

func (svc *OrchestratorService) Configure(ctx *appContext.Context) error {
	svc.dailyCap = DailyInviteCap
	svc.cooldown = LoopCooldown
	return svc.DefaultService.Configure(ctx)
}

func (svc *OrchestratorService) Start() error {
	svc.tracking = svc.Service(TRACKING_SVC).(*TrackingService)
	svc.funnelSvc = svc.Service(FUNNEL_SVC).(*FunnelService)
	svc.monitoring = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// NewOrchestratorService builds the service outside the container. A zero cap or cooldown
// uses the defaults.
func NewOrchestratorService(tracking *TrackingService, funnelSvc *FunnelService, dailyCap int64, cooldown time.Duration) *OrchestratorService {
	if dailyCap <= 0 {
		dailyCap = DailyInviteCap
	}
	if cooldown <= 0 {
		cooldown = LoopCooldown
	}
	return &OrchestratorService{
		dailyCap:  dailyCap,
		cooldown:  cooldown,
		tracking:  tracking,
		funnelSvc: funnelSvc,
	}
}

// SelectLoop evaluates the rule table in order; the first match wins.
func (svc *OrchestratorService) SelectLoop(event string, tc model.TriggerContext) (model.LoopType, bool) {
	return SelectLoop(event, tc)
}

func SelectLoop(event string, tc model.TriggerContext) (model.LoopType, bool) {
	data := tc.Data

	switch {
	case event == model.EventSessionCompleted && numberAbove(data["score"], scoreThreshold):
		return model.LoopBuddyChallenge, true
	case event == model.EventBuddyChallengeAccepted:
		return model.LoopVoiceRoomInvite, true
	case event == model.EventVoiceRoom15Min && numberAbove(data["minutesInRoom"], minutesInRoomThreshold):
		return model.LoopTutorSpotlight, true
	case event == model.EventSessionCompleted && isParent(data) && truthy(data["studentCompleted"]):
		return model.LoopProudParentShare, true
	}
	return "", false
}

func isParent(data map[string]any) bool {
	if role, ok := data["role"].(string); ok && role == "parent" {
		return true
	}
	role, ok := data["userRole"].(string)
	return ok && role == "parent"
}

func numberAbove(v any, threshold float64) bool {
	switch n := v.(type) {
	case float64:
		return n > threshold
	case float32:
		return float64(n) > threshold
	case int:
		return float64(n) > threshold
	case int64:
		return float64(n) > threshold
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return err == nil && f > threshold
	}
	return false
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return false
}

func throttleKey(userID int64, day string) string {
	return store.Key("throttle", strconv.FormatInt(userID, 10), day)
}

func cooldownKey(userID int64, loopType model.LoopType) string {
	return store.Key("cooldown", strconv.FormatInt(userID, 10), string(loopType))
}

// Decide applies the cooldown and the daily gate. A passing call consumes one slot of the
// daily quota and restarts the cooldown, so call it once per real trigger attempt. Both
// checks are atomic in the store, so concurrent calls never exceed the cap.
func (svc *OrchestratorService) Decide(ctx context.Context, userID int64, loopType model.LoopType, event string) model.LoopTriggerDecision {
	decision, err := svc.decide(ctx, userID, loopType, event)
	if err != nil {
		log.WithFields(log.Fields{
			"user_id":   userID,
			"loop_type": loopType,
		}).WithError(err).Error("Tracking store failed during loop decision")
		decision = model.LoopTriggerDecision{
			Reason: fmt.Sprintf("Tracking unavailable: %v", err),
		}
		svc.record(loopType, decision, model.StatusBlocked)
		return decision
	}

	status := model.StatusTriggered
	switch {
	case decision.Throttled:
		status = model.StatusThrottled
	case decision.Cooldown:
		status = model.StatusBlocked
	}
	svc.record(loopType, decision, status)
	return decision
}

func (svc *OrchestratorService) decide(ctx context.Context, userID int64, loopType model.LoopType, event string) (model.LoopTriggerDecision, error) {
	st := svc.tracking.Store()
	now := svc.tracking.Clock().Now()
	loc := svc.tracking.Location()

	dayKey := throttleKey(userID, shared.DayKey(now, loc))
	coolKey := cooldownKey(userID, loopType)

	// The cooldown is claimed first so two calls for the same loop cannot both pass it.
	claimed, err := st.SetIfAbsent(ctx, coolKey, strconv.FormatInt(now.UnixMilli(), 10), svc.cooldown)
	if err != nil {
		return model.LoopTriggerDecision{}, err
	}
	if !claimed {
		return svc.rejected(ctx, st, dayKey, coolKey, now)
	}

	// Counters expire at the end of their day; cooldown stamps when the window closes.
	count, ok, err := st.IncrementIfBelow(ctx, dayKey, svc.dailyCap, shared.EndOfDay(now, loc).Sub(now))
	if err != nil {
		svc.releaseCooldown(ctx, st, coolKey)
		return model.LoopTriggerDecision{}, err
	}
	if !ok {
		svc.releaseCooldown(ctx, st, coolKey)
		return throttled(count, svc.dailyCap), nil
	}

	reason := fmt.Sprintf("Triggering %s for user %d", loopType, userID)
	if event != "" {
		reason += fmt.Sprintf(" (event: %s)", event)
	}

	lt := loopType
	return model.LoopTriggerDecision{
		ShouldTrigger: true,
		LoopType:      &lt,
		Reason:        reason,
	}, nil
}

// rejected builds the decision for a call whose cooldown is already held. The daily gate
// is reported ahead of the cooldown.
func (svc *OrchestratorService) rejected(ctx context.Context, st store.Store, dayKey, coolKey string, now time.Time) (model.LoopTriggerDecision, error) {
	count, err := readCount(ctx, st, dayKey)
	if err != nil {
		return model.LoopTriggerDecision{}, err
	}
	if count >= svc.dailyCap {
		return throttled(count, svc.dailyCap), nil
	}

	remaining := svc.cooldown
	raw, ok, err := st.Get(ctx, coolKey)
	if err != nil {
		return model.LoopTriggerDecision{}, err
	}
	if last, perr := strconv.ParseInt(raw, 10, 64); ok && perr == nil {
		remaining = svc.cooldown - now.Sub(time.UnixMilli(last))
	}
	minutes := max(int64(math.Ceil(remaining.Minutes())), 1)
	return model.LoopTriggerDecision{
		Reason:   fmt.Sprintf("Cooldown active (%d minutes remaining)", minutes),
		Cooldown: true,
	}, nil
}

// releaseCooldown drops a cooldown claimed by a call that did not trigger.
func (svc *OrchestratorService) releaseCooldown(ctx context.Context, st store.Store, coolKey string) {
	if err := st.Delete(ctx, coolKey); err != nil {
		log.WithFields(log.Fields{
			"key": coolKey,
		}).WithError(err).Error("Failed to release loop cooldown")
	}
}

func throttled(count, dailyCap int64) model.LoopTriggerDecision {
	return model.LoopTriggerDecision{
		Reason:    fmt.Sprintf("Daily limit reached (%d/%d invites today)", count, dailyCap),
		Throttled: true,
	}
}

func readCount(ctx context.Context, st store.Store, key string) (int64, error) {
	raw, ok, err := st.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

// Evaluate runs SelectLoop and only calls Decide when a rule matched.
func (svc *OrchestratorService) Evaluate(ctx context.Context, userID int64, event string, tc model.TriggerContext) model.LoopTriggerDecision {
	loopType, ok := SelectLoop(event, tc)
	if !ok {
		decision := model.LoopTriggerDecision{
			Reason: fmt.Sprintf("No loop matches event %s", event),
		}
		svc.record("", decision, model.StatusNoAction)
		return decision
	}
	return svc.Decide(ctx, userID, loopType, event)
}

// ResetTracking clears every counter, cooldown, marker and balance plus the in-memory logs.
func (svc *OrchestratorService) ResetTracking(ctx context.Context) error {
	if err := svc.tracking.Store().Reset(ctx); err != nil {
		return shared.NewServiceUnavailableError(err, "Failed to reset tracking")
	}
	svc.funnelSvc.Reset()

	log.Info("Tracking state reset")
	return nil
}

func (svc *OrchestratorService) record(loopType model.LoopType, decision model.LoopTriggerDecision, status model.DecisionStatus) {
	action := string(loopType)
	if action == "" {
		action = "none"
	}

	svc.funnelSvc.LogDecision(model.DecisionLogEntry{
		Agent:  shared.AgentOrchestrator,
		Action: action,
		Reason: decision.Reason,
		Status: status,
	})
	svc.monitoring.RecordDecision(string(loopType), string(status))
}
