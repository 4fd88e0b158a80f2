package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RewardAmounts are the gem amounts granted per action.
type RewardAmounts struct {
	BuddyChallenge  int64 `yaml:"buddyChallenge"`
	VoiceRoom       int64 `yaml:"voiceRoom"`
	LevelUp         int64 `yaml:"levelUp"`
	SessionComplete int64 `yaml:"sessionComplete"`
	VoiceRoomJoin   int64 `yaml:"voiceRoomJoin"`
	InviteAccepted  int64 `yaml:"inviteAccepted"`
	VoiceRoom30Min  int64 `yaml:"voiceRoom30Min"`
	Achievement     int64 `yaml:"achievement"`
}

type RewardConfig struct {
	Amounts RewardAmounts `yaml:"amounts"`
	// StreakMilestones maps a streak length in days to its one-time bonus.
	StreakMilestones map[int64]int64 `yaml:"streakMilestones"`
}

func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		Amounts: RewardAmounts{
			BuddyChallenge:  50,
			VoiceRoom:       25,
			LevelUp:         200,
			SessionComplete: 20,
			VoiceRoomJoin:   10,
			InviteAccepted:  15,
			VoiceRoom30Min:  25,
			Achievement:     50,
		},
		StreakMilestones: map[int64]int64{
			7:  100,
			30: 500,
		},
	}
}

// LoadRewardConfig reads a YAML file over the defaults. Keys missing from the file keep
// their default values; a streakMilestones block replaces the default table.
func LoadRewardConfig(path string) (RewardConfig, error) {
	cfg := DefaultRewardConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read rewards config: %w", err)
	}
	return ParseRewardConfig(data)
}

func ParseRewardConfig(data []byte) (RewardConfig, error) {
	cfg := DefaultRewardConfig()
	cfg.StreakMilestones = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultRewardConfig(), fmt.Errorf("failed to parse rewards config: %w", err)
	}
	if cfg.StreakMilestones == nil {
		cfg.StreakMilestones = DefaultRewardConfig().StreakMilestones
	}

	return cfg, cfg.Validate()
}

func (c RewardConfig) Validate() error {
	amounts := map[string]int64{
		"buddyChallenge":  c.Amounts.BuddyChallenge,
		"voiceRoom":       c.Amounts.VoiceRoom,
		"levelUp":         c.Amounts.LevelUp,
		"sessionComplete": c.Amounts.SessionComplete,
		"voiceRoomJoin":   c.Amounts.VoiceRoomJoin,
		"inviteAccepted":  c.Amounts.InviteAccepted,
		"voiceRoom30Min":  c.Amounts.VoiceRoom30Min,
		"achievement":     c.Amounts.Achievement,
	}
	for name, v := range amounts {
		if v < 0 {
			return fmt.Errorf("reward amount %s must not be negative", name)
		}
	}
	for days, bonus := range c.StreakMilestones {
		if days <= 0 {
			return fmt.Errorf("streak milestone %d must be positive", days)
		}
		if bonus < 0 {
			return fmt.Errorf("streak milestone %d bonus must not be negative", days)
		}
	}
	return nil
}
