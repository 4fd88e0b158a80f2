package services

import (
	"testing"
	"time"

	"github.com/lac-hong-legacy/ven_growth/services/smartlink"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

var testStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	clock        *shared.ManualClock
	tracking     *TrackingService
	funnel       *FunnelService
	reward       *RewardService
	orchestrator *OrchestratorService
	link         *LinkService
	session      *SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := shared.NewManualClock(testStart)
	tracking := NewTrackingService(clock, time.UTC)
	funnel := NewFunnelService(clock, DefaultDecisionLogSize)
	reward := NewRewardService(tracking.Store(), funnel, DefaultRewardConfig())
	orchestrator := NewOrchestratorService(tracking, funnel, DailyInviteCap, LoopCooldown)
	link := NewLinkService(smartlink.NewCodec("http://localhost:3000", clock), tracking, reward, funnel, nil)

	return &testEnv{
		clock:        clock,
		tracking:     tracking,
		funnel:       funnel,
		reward:       reward,
		orchestrator: orchestrator,
		link:         link,
		session:      NewSessionService(reward, link, funnel, orchestrator),
	}
}
