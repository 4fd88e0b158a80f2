package model

type RewardBalance struct {
	UserID     int64 `json:"user_id"`
	Points     int64 `json:"points"`
	Gems       int64 `json:"gems"`
	StreakDays int64 `json:"streak_days"`
	Level      int64 `json:"level"`
}

type NotificationKind string

const (
	NotificationGems        NotificationKind = "gems"
	NotificationStreak      NotificationKind = "streak"
	NotificationLevelUp     NotificationKind = "levelUp"
	NotificationAchievement NotificationKind = "achievement"
)

// Notification is the display payload handed back to the front-end.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Amount  int64            `json:"amount"`
	Message string           `json:"message"`
	Icon    string           `json:"icon"`
	IsBig   bool             `json:"is_big,omitempty"`
}

type LevelProgress struct {
	Level           int64   `json:"level"`
	NextLevel       int64   `json:"next_level"`
	ProgressPercent float64 `json:"progress_percent"`
}
