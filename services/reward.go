package services

import (
	"context"
	"fmt"
	"math"
	"strconv"

	appContext "github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services/store"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const (
	REWARD_SVC = "reward_svc"

	PointsPerLevel = 1000
	PointsPerGem   = 2
)

type rewardServiceConfig struct {
	ConfigPath string `envconfig:"REWARDS_CONFIG"`
}

// RewardService is the additive ledger for points and gems plus milestone detection.
// Balances only ever grow; negative amounts are clamped to zero.
type RewardService struct {
	appContext.DefaultService

	envCfg rewardServiceConfig
	cfg    RewardConfig

	store      store.Store
	funnelSvc  *FunnelService
	monitoring *MonitoringService
}

func (svc RewardService) Id() string {
	return REWARD_SVC
}

func (svc *RewardService) Configure(ctx *appContext.Context) error {
	if err := envconfig.Process("", &svc.envCfg); err != nil {
		return err
	}

	cfg, err := LoadRewardConfig(svc.envCfg.ConfigPath)
	if err != nil {
		return err
	}
	svc.cfg = cfg

	return svc.DefaultService.Configure(ctx)
}

func (svc *RewardService) Start() error {
	svc.store = svc.Service(TRACKING_SVC).(*TrackingService).Store()
	svc.funnelSvc = svc.Service(FUNNEL_SVC).(*FunnelService)
	svc.monitoring = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

func NewRewardService(st store.Store, funnelSvc *FunnelService, cfg RewardConfig) *RewardService {
	return &RewardService{cfg: cfg, store: st, funnelSvc: funnelSvc}
}

func (svc *RewardService) Config() RewardConfig {
	return svc.cfg
}

func balanceKey(userID int64, field string) string {
	return store.Key("balance", strconv.FormatInt(userID, 10), field)
}

func streakMarkerKey(userID, days int64) string {
	return store.Key("milestone", "streak", strconv.FormatInt(userID, 10), strconv.FormatInt(days, 10))
}

// Level is floor(points/1000)+1. Negative points count as zero.
func Level(points int64) int64 {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// LevelProgress reports how far points are into the current 1000-point band.
func LevelProgress(points int64) model.LevelProgress {
	if points < 0 {
		points = 0
	}
	level := Level(points)
	floor := (level - 1) * PointsPerLevel
	percent := float64(points-floor) / float64(PointsPerLevel) * 100
	percent = math.Min(100, math.Max(0, percent))

	return model.LevelProgress{
		Level:           level,
		NextLevel:       level + 1,
		ProgressPercent: math.Round(percent*100) / 100,
	}
}

func (svc *RewardService) Progress(points int64) model.LevelProgress {
	return LevelProgress(points)
}

// AwardPoints adds amount gems and twice as many points. It always returns a notification;
// store failures are logged.
func (svc *RewardService) AwardPoints(ctx context.Context, userID, amount int64, reason string) model.Notification {
	if amount < 0 {
		amount = 0
	}

	svc.credit(ctx, userID, amount, amount*PointsPerGem)
	svc.monitoring.RecordReward(string(model.NotificationGems))

	return model.Notification{
		Kind:    model.NotificationGems,
		Amount:  amount,
		Message: fmt.Sprintf("💎 +%d gems - %s", amount, reason),
		Icon:    "💎",
	}
}

// AwardBonusPoints adds points without gems and returns the balance before and after.
func (svc *RewardService) AwardBonusPoints(ctx context.Context, userID, points int64) (int64, int64, error) {
	if points < 0 {
		points = 0
	}

	after, err := svc.store.IncrementBy(ctx, balanceKey(userID, "points"), points, 0)
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "points": points}).WithError(err).Error("Failed to award bonus points")
		return 0, 0, err
	}
	return after - points, after, nil
}

func (svc *RewardService) credit(ctx context.Context, userID, gems, points int64) {
	if _, err := svc.store.IncrementBy(ctx, balanceKey(userID, "gems"), gems, 0); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "gems": gems}).WithError(err).Error("Failed to credit gems")
	}
	if _, err := svc.store.IncrementBy(ctx, balanceKey(userID, "points"), points, 0); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "points": points}).WithError(err).Error("Failed to credit points")
	}
}

func (svc *RewardService) AwardAchievement(ctx context.Context, userID int64, name, message string) model.Notification {
	amount := svc.cfg.Amounts.Achievement
	svc.credit(ctx, userID, amount, amount*PointsPerGem)
	svc.monitoring.RecordReward(string(model.NotificationAchievement))
	svc.logReward(userID, "Achievement: "+name, message)

	return model.Notification{
		Kind:    model.NotificationAchievement,
		Amount:  amount,
		Message: "🏆 " + message,
		Icon:    "🏆",
		IsBig:   true,
	}
}

// CheckStreakMilestone awards the bonus for streakDays once per user. It returns nil when
// streakDays is not a milestone or was already rewarded.
func (svc *RewardService) CheckStreakMilestone(ctx context.Context, userID, streakDays int64) *model.Notification {
	svc.recordStreak(ctx, userID, streakDays)

	bonus, ok := svc.cfg.StreakMilestones[streakDays]
	if !ok {
		return nil
	}

	first, err := svc.store.SetIfAbsent(ctx, streakMarkerKey(userID, streakDays), "1", 0)
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "streak": streakDays}).WithError(err).Error("Failed to mark streak milestone")
		return nil
	}
	if !first {
		return nil
	}

	svc.AwardPoints(ctx, userID, bonus, fmt.Sprintf("%d day streak milestone!", streakDays))
	svc.monitoring.RecordReward(string(model.NotificationStreak))

	message := fmt.Sprintf("🔥 %d day streak unlocked! +%d gems", streakDays, bonus)
	svc.logReward(userID, "Streak milestone", message)

	return &model.Notification{
		Kind:    model.NotificationStreak,
		Amount:  bonus,
		Message: message,
		Icon:    "🔥",
		IsBig:   true,
	}
}

// recordStreak keeps the longest streak seen for the balance view.
func (svc *RewardService) recordStreak(ctx context.Context, userID, streakDays int64) {
	key := balanceKey(userID, "streak")
	current, ok, err := svc.store.Get(ctx, key)
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "streak": streakDays}).WithError(err).Error("Failed to read longest streak")
		return
	}
	if ok {
		if v, err := strconv.ParseInt(current, 10, 64); err == nil && v >= streakDays {
			return
		}
	}
	if err := svc.store.Set(ctx, key, strconv.FormatInt(streakDays, 10), 0); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "streak": streakDays}).WithError(err).Error("Failed to record longest streak")
	}
}

// CheckLevelUp fires when currentPoints lands in a higher 1000-point band than previousPoints.
func (svc *RewardService) CheckLevelUp(ctx context.Context, userID, previousPoints, currentPoints int64) *model.Notification {
	previousLevel := Level(previousPoints)
	currentLevel := Level(currentPoints)
	if currentLevel <= previousLevel {
		return nil
	}

	bonus := svc.cfg.Amounts.LevelUp
	svc.AwardPoints(ctx, userID, bonus, fmt.Sprintf("Level %d unlocked!", currentLevel))
	svc.monitoring.RecordReward(string(model.NotificationLevelUp))

	message := fmt.Sprintf("⭐ Level %d unlocked! +%d gems", currentLevel, bonus)
	svc.logReward(userID, "Level up", message)

	return &model.Notification{
		Kind:    model.NotificationLevelUp,
		Amount:  bonus,
		Message: message,
		Icon:    "⭐",
		IsBig:   true,
	}
}

func (svc *RewardService) Balance(ctx context.Context, userID int64) (*model.RewardBalance, error) {
	balance := &model.RewardBalance{UserID: userID}

	fields := map[string]*int64{
		"points": &balance.Points,
		"gems":   &balance.Gems,
		"streak": &balance.StreakDays,
	}
	for field, dst := range fields {
		raw, ok, err := svc.store.Get(ctx, balanceKey(userID, field))
		if err != nil {
			return nil, shared.NewServiceUnavailableError(err, "Tracking unavailable")
		}
		if !ok {
			continue
		}
		if *dst, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("corrupt %s balance for user %d: %w", field, userID, err)
		}
	}

	balance.Level = Level(balance.Points)
	return balance, nil
}

func (svc *RewardService) logReward(userID int64, action, message string) {
	if svc.funnelSvc == nil {
		return
	}
	svc.funnelSvc.LogDecision(model.DecisionLogEntry{
		Agent:  shared.AgentRewards,
		Action: action,
		Reason: fmt.Sprintf("User %d: %s", userID, message),
		Status: model.StatusTriggered,
	})
}
