package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services/smartlink"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

func TestCreateChallenge(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.link.CreateChallenge(context.Background(), dto.CreateChallengeRequest{
		SenderID:       1,
		SenderName:     "Alex",
		Subject:        "Algebra",
		RecipientEmail: "friend@example.com",
	})
	require.NoError(t, err)
	assert.True(t, smartlink.ValidCode(resp.Code))
	assert.False(t, resp.EmailSent)

	link, ok := smartlink.Decode(resp.Link)
	require.True(t, ok)
	assert.Equal(t, resp.Code, link.Code)
	assert.Equal(t, int64(smartlink.DefaultReward), link.RewardAmount)
	assert.Equal(t, model.ChallengeBeatScore, link.ChallengeType)

	assert.Equal(t, int64(1), env.funnel.FunnelCounts()[model.FunnelLinkCreated])
}

func TestOpenChallenge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.link.CreateChallenge(ctx, dto.CreateChallengeRequest{SenderID: 1, SenderName: "Alex", Subject: "Algebra"})
	require.NoError(t, err)

	link, err := env.link.OpenChallenge(ctx, created.Link)
	require.NoError(t, err)
	assert.Equal(t, "Alex", link.FromUserName)
	assert.Equal(t, int64(1), env.funnel.FunnelCounts()[model.FunnelLinkClicked])

	decisions := env.funnel.Decisions(1)
	assert.Equal(t, "Analytics", decisions[0].Agent)
	assert.Equal(t, "Link clicked", decisions[0].Action)
}

func TestOpenChallenge_Malformed(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.link.OpenChallenge(context.Background(), "http://localhost:3000/invite?code=ONLY")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, int64(0), env.funnel.FunnelCounts()[model.FunnelLinkClicked])
}

func TestCompleteChallenge_OncePerCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.link.CreateChallenge(ctx, dto.CreateChallengeRequest{SenderID: 1, SenderName: "Alex", Subject: "Algebra"})
	require.NoError(t, err)

	req := dto.CompleteChallengeRequest{UserID: 2, FromUserID: 1}
	first, err := env.link.CompleteChallenge(ctx, created.Code, req)
	require.NoError(t, err)
	assert.False(t, first.AlreadyCompleted)
	require.Len(t, first.Notifications, 1)
	assert.Equal(t, int64(50), first.Notifications[0].Amount)

	second, err := env.link.CompleteChallenge(ctx, created.Code, req)
	require.NoError(t, err)
	assert.True(t, second.AlreadyCompleted)
	assert.Empty(t, second.Notifications)

	completer, err := env.reward.Balance(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(50), completer.Gems)

	sender, err := env.reward.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(15), sender.Gems)

	assert.Equal(t, int64(1), env.funnel.FunnelCounts()[model.FunnelConversion])
}

func TestCompleteChallenge_SelfInviteRewardsOnlyCompleter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.link.CompleteChallenge(ctx, "BUDDY_LX2_ABC123", dto.CompleteChallengeRequest{UserID: 1, FromUserID: 1})
	require.NoError(t, err)

	balance, err := env.reward.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance.Gems)
}

func TestCompleteChallenge_InvalidCode(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.link.CompleteChallenge(context.Background(), "not-a-code", dto.CompleteChallengeRequest{UserID: 2})
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestCreateChallenge_ZeroReward(t *testing.T) {
	env := newTestEnv(t)

	zero := int64(0)
	resp, err := env.link.CreateChallenge(context.Background(), dto.CreateChallengeRequest{
		SenderID:     1,
		SenderName:   "Alex",
		Subject:      "Algebra",
		RewardAmount: &zero,
	})
	require.NoError(t, err)

	link, ok := smartlink.Decode(resp.Link)
	require.True(t, ok)
	assert.Equal(t, int64(0), link.RewardAmount)
}
