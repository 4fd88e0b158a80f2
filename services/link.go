package services

import (
	"context"
	"strconv"

	appContext "github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services/smartlink"
	"github.com/lac-hong-legacy/ven_growth/services/store"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const LINK_SVC = "link_svc"

type linkConfig struct {
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`
}

// LinkService issues buddy challenge links and records their clicks and conversions.
type LinkService struct {
	appContext.DefaultService

	cfg   linkConfig
	codec *smartlink.Codec

	tracking  *TrackingService
	rewardSvc *RewardService
	funnelSvc *FunnelService
	emailSvc  *EmailService
}

func (svc LinkService) Id() string {
	return LINK_SVC
}

func (svc *LinkService) Configure(ctx *appContext.Context) error {
	if err := envconfig.Process("", &svc.cfg); err != nil {
		return err
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *LinkService) Start() error {
	svc.tracking = svc.Service(TRACKING_SVC).(*TrackingService)
	svc.rewardSvc = svc.Service(REWARD_SVC).(*RewardService)
	svc.funnelSvc = svc.Service(FUNNEL_SVC).(*FunnelService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)
	svc.codec = smartlink.NewCodec(svc.cfg.PublicBaseURL, svc.tracking.Clock())
	return nil
}

func NewLinkService(codec *smartlink.Codec, tracking *TrackingService, rewardSvc *RewardService, funnelSvc *FunnelService, emailSvc *EmailService) *LinkService {
	return &LinkService{
		codec:     codec,
		tracking:  tracking,
		rewardSvc: rewardSvc,
		funnelSvc: funnelSvc,
		emailSvc:  emailSvc,
	}
}

func (svc *LinkService) CreateChallenge(ctx context.Context, req dto.CreateChallengeRequest) (*dto.CreateChallengeResponse, error) {
	link, code := svc.codec.EncodeLink(smartlink.LinkInput{
		SessionID:     req.SessionID,
		SenderID:      req.SenderID,
		SenderName:    req.SenderName,
		Subject:       req.Subject,
		ChallengeType: model.ChallengeType(req.ChallengeType),
		RewardAmount:  req.RewardAmount,
	})

	if _, err := svc.funnelSvc.TrackFunnelEvent(ctx, model.FunnelLinkCreated, map[string]any{
		"code":    code,
		"fromId":  req.SenderID,
		"subject": req.Subject,
	}); err != nil {
		return nil, err
	}

	resp := &dto.CreateChallengeResponse{Link: link, Code: code}
	if req.RecipientEmail != "" && svc.emailSvc.Enabled() {
		reward := int64(smartlink.DefaultReward)
		if req.RewardAmount != nil {
			reward = *req.RewardAmount
		}
		err := svc.emailSvc.SendChallengeInvite(req.RecipientEmail, ChallengeInviteEmailData{
			SenderName: req.SenderName,
			Subject:    req.Subject,
			Link:       link,
			Message:    req.Message,
			Reward:     reward,
		})
		if err != nil {
			log.WithField("code", code).WithError(err).Warn("Challenge link created but invite email failed")
		} else {
			resp.EmailSent = true
		}
	}

	return resp, nil
}

// OpenChallenge parses a clicked link. Malformed links are a 400, never a panic.
func (svc *LinkService) OpenChallenge(ctx context.Context, rawURL string) (*model.ChallengeLink, error) {
	link, ok := smartlink.Decode(rawURL)
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Invalid or incomplete challenge link")
	}

	if _, err := svc.funnelSvc.TrackFunnelEvent(ctx, model.FunnelLinkClicked, map[string]any{
		"code":   link.Code,
		"fromId": link.FromUserID,
	}); err != nil {
		return nil, err
	}
	svc.funnelSvc.LogDecision(model.DecisionLogEntry{
		Agent:  shared.AgentAnalytics,
		Action: "Link clicked",
		Reason: "Invite link clicked: " + link.Code,
		Status: model.StatusTriggered,
	})

	return link, nil
}

func conversionKey(code string) string {
	return store.Key("invite", "converted", code)
}

// CompleteChallenge converts a challenge once per code. The completer receives the
// buddy challenge reward and the sender, when known, the invite-accepted reward.
func (svc *LinkService) CompleteChallenge(ctx context.Context, code string, req dto.CompleteChallengeRequest) (*dto.CompleteChallengeResponse, error) {
	if !smartlink.ValidCode(code) {
		return nil, shared.NewBadRequestError(nil, "Invalid challenge code")
	}

	first, err := svc.tracking.Store().SetIfAbsent(ctx, conversionKey(code), strconv.FormatInt(req.UserID, 10), 0)
	if err != nil {
		return nil, shared.NewServiceUnavailableError(err, "Tracking unavailable")
	}

	resp := &dto.CompleteChallengeResponse{Code: code, Notifications: []model.Notification{}}
	if !first {
		resp.AlreadyCompleted = true
		return resp, nil
	}

	amounts := svc.rewardSvc.Config().Amounts
	resp.Notifications = append(resp.Notifications,
		svc.rewardSvc.AwardPoints(ctx, req.UserID, amounts.BuddyChallenge, "Challenge completed!"))
	if req.FromUserID > 0 && req.FromUserID != req.UserID {
		svc.rewardSvc.AwardPoints(ctx, req.FromUserID, amounts.InviteAccepted, "Your challenge was accepted!")
	}

	if _, err := svc.funnelSvc.TrackFunnelEvent(ctx, model.FunnelConversion, map[string]any{
		"code":      code,
		"userId":    req.UserID,
		"sessionId": req.SessionID,
	}); err != nil {
		return nil, err
	}

	return resp, nil
}
