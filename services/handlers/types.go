package handlers

import (
	"context"
	"time"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services/llm"
)

type OrchestratorServiceInterface interface {
	SelectLoop(event string, tc model.TriggerContext) (model.LoopType, bool)
	Decide(ctx context.Context, userID int64, loopType model.LoopType, event string) model.LoopTriggerDecision
	Evaluate(ctx context.Context, userID int64, event string, tc model.TriggerContext) model.LoopTriggerDecision
	ResetTracking(ctx context.Context) error
}

type RewardServiceInterface interface {
	AwardPoints(ctx context.Context, userID, amount int64, reason string) model.Notification
	CheckStreakMilestone(ctx context.Context, userID, streakDays int64) *model.Notification
	CheckLevelUp(ctx context.Context, userID, previousPoints, currentPoints int64) *model.Notification
	Balance(ctx context.Context, userID int64) (*model.RewardBalance, error)
	Progress(points int64) model.LevelProgress
}

type LinkServiceInterface interface {
	CreateChallenge(ctx context.Context, req dto.CreateChallengeRequest) (*dto.CreateChallengeResponse, error)
	OpenChallenge(ctx context.Context, rawURL string) (*model.ChallengeLink, error)
	CompleteChallenge(ctx context.Context, code string, req dto.CompleteChallengeRequest) (*dto.CompleteChallengeResponse, error)
}

type AIServiceInterface interface {
	AnalyzeAndOrchestrate(ctx context.Context, event string, uc model.UserContext, session *model.Session) model.AIOrchestrationResult
	AnalyzeSession(ctx context.Context, session model.Session) llm.Result[model.SessionInsights]
	PersonalizeMessage(ctx context.Context, pc model.PersonalizationContext) llm.Result[string]
}

type FunnelServiceInterface interface {
	TrackFunnelEvent(ctx context.Context, name model.FunnelEventName, payload interface{}) (*model.FunnelEvent, error)
	Decisions(limit int) []model.DecisionLogEntry
	FunnelEvents(limit int) []model.FunnelEvent
	FunnelCounts() map[model.FunnelEventName]int64
}

type SessionServiceInterface interface {
	CompleteSession(ctx context.Context, req dto.CompleteSessionRequest) (*dto.CompleteSessionResponse, error)
}

type ArchiveServiceInterface interface {
	Enabled() bool
	ExportDay(ctx context.Context, day time.Time) (*dto.ArchiveExportResponse, error)
}
