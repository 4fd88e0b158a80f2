package services

import (
	"context"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/model"
)

const (
	SESSION_SVC = "session_svc"

	PointsPerCorrectAnswer = 10
)

// SessionService runs the reward, invite and loop steps that follow a finished practice session.
type SessionService struct {
	appContext.DefaultService

	rewardSvc       *RewardService
	linkSvc         *LinkService
	funnelSvc       *FunnelService
	orchestratorSvc *OrchestratorService
}

func (svc SessionService) Id() string {
	return SESSION_SVC
}

func (svc *SessionService) Start() error {
	svc.rewardSvc = svc.Service(REWARD_SVC).(*RewardService)
	svc.linkSvc = svc.Service(LINK_SVC).(*LinkService)
	svc.funnelSvc = svc.Service(FUNNEL_SVC).(*FunnelService)
	svc.orchestratorSvc = svc.Service(ORCHESTRATOR_SVC).(*OrchestratorService)
	return nil
}

func NewSessionService(rewardSvc *RewardService, linkSvc *LinkService, funnelSvc *FunnelService, orchestratorSvc *OrchestratorService) *SessionService {
	return &SessionService{
		rewardSvc:       rewardSvc,
		linkSvc:         linkSvc,
		funnelSvc:       funnelSvc,
		orchestratorSvc: orchestratorSvc,
	}
}

func (svc *SessionService) CompleteSession(ctx context.Context, req dto.CompleteSessionRequest) (*dto.CompleteSessionResponse, error) {
	session := model.Session{
		SessionID:         req.SessionID,
		Subject:           req.Subject,
		Duration:          req.Duration,
		QuestionsAnswered: req.QuestionsAnswered,
		CorrectAnswers:    req.CorrectAnswers,
		SkillsImproved:    req.SkillsImproved,
	}
	accuracy := session.Accuracy()

	previousPoints, _, err := svc.rewardSvc.AwardBonusPoints(ctx, req.UserID, int64(req.CorrectAnswers)*PointsPerCorrectAnswer)
	if err != nil {
		return nil, err
	}

	notifications := []model.Notification{
		svc.rewardSvc.AwardPoints(ctx, req.UserID, svc.rewardSvc.Config().Amounts.SessionComplete, "Session completed!"),
	}
	if req.QuestionsAnswered > 0 && req.CorrectAnswers >= req.QuestionsAnswered {
		notifications = append(notifications,
			svc.rewardSvc.AwardAchievement(ctx, req.UserID, "Perfect Score", "Perfect score in "+req.Subject+"!"))
	}

	if n := svc.rewardSvc.CheckStreakMilestone(ctx, req.UserID, req.StreakDays+1); n != nil {
		notifications = append(notifications, *n)
	}

	balance, err := svc.rewardSvc.Balance(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if n := svc.rewardSvc.CheckLevelUp(ctx, req.UserID, previousPoints, balance.Points); n != nil {
		notifications = append(notifications, *n)
	}

	if req.InviteCode != "" {
		resp, err := svc.linkSvc.CompleteChallenge(ctx, req.InviteCode, dto.CompleteChallengeRequest{
			UserID:     req.UserID,
			SessionID:  req.SessionID,
			FromUserID: req.InviterID,
		})
		if err != nil {
			log.WithFields(log.Fields{"user_id": req.UserID, "code": req.InviteCode}).WithError(err).Warn("Invite completion skipped")
		} else {
			notifications = append(notifications, resp.Notifications...)
		}
	}

	if _, err := svc.funnelSvc.TrackFunnelEvent(ctx, model.FunnelSessionCompleted, map[string]any{
		"userId":    req.UserID,
		"sessionId": req.SessionID,
		"subject":   req.Subject,
		"score":     accuracy,
	}); err != nil {
		return nil, err
	}

	data := map[string]any{"score": accuracy}
	if req.Role != "" {
		data["role"] = req.Role
	}
	decision := svc.orchestratorSvc.Evaluate(ctx, req.UserID, model.EventSessionCompleted, model.TriggerContext{
		UserID: req.UserID,
		Event:  model.EventSessionCompleted,
		Data:   data,
	})

	balance, err = svc.rewardSvc.Balance(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.CompleteSessionResponse{
		Accuracy:      accuracy,
		Balance:       balance,
		Notifications: notifications,
		Decision:      decision,
	}, nil
}
