package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRewardConfig_PartialOverride(t *testing.T) {
	cfg, err := ParseRewardConfig([]byte(`
amounts:
  buddyChallenge: 75
  levelUp: 300
`))
	require.NoError(t, err)

	assert.Equal(t, int64(75), cfg.Amounts.BuddyChallenge)
	assert.Equal(t, int64(300), cfg.Amounts.LevelUp)
	assert.Equal(t, int64(20), cfg.Amounts.SessionComplete)
	assert.Equal(t, map[int64]int64{7: 100, 30: 500}, cfg.StreakMilestones)
}

func TestParseRewardConfig_MilestonesReplaceDefaults(t *testing.T) {
	cfg, err := ParseRewardConfig([]byte(`
streakMilestones:
  3: 20
  14: 250
`))
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{3: 20, 14: 250}, cfg.StreakMilestones)
}

func TestParseRewardConfig_Invalid(t *testing.T) {
	_, err := ParseRewardConfig([]byte("amounts:\n  levelUp: -5\n"))
	assert.ErrorContains(t, err, "levelUp")

	_, err = ParseRewardConfig([]byte("streakMilestones:\n  0: 10\n"))
	assert.Error(t, err)

	_, err = ParseRewardConfig([]byte("amounts: [1, 2"))
	assert.Error(t, err)
}

func TestLoadRewardConfig(t *testing.T) {
	cfg, err := LoadRewardConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRewardConfig(), cfg)

	path := filepath.Join(t.TempDir(), "rewards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("amounts:\n  inviteAccepted: 40\n"), 0o600))

	cfg, err = LoadRewardConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(40), cfg.Amounts.InviteAccepted)

	_, err = LoadRewardConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
