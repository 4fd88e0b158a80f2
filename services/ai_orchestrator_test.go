package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services/llm"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

type scriptedClient struct {
	mu      sync.Mutex
	replies []string
}

func (c *scriptedClient) Complete(_ context.Context, _, _ string, _ bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.replies) == 0 {
		return "", llm.ErrEmptyResponse
	}
	reply := c.replies[0]
	c.replies = c.replies[1:]
	return reply, nil
}

func newTestAIOrchestrator(client llm.Client) (*AIOrchestratorService, *FunnelService) {
	funnel := NewFunnelService(shared.NewManualClock(testStart), 10)
	return NewAIOrchestratorService(llm.NewCopyService(client, time.Second), funnel), funnel
}

var aiSession = &model.Session{Subject: "Algebra", QuestionsAnswered: 10, CorrectAnswers: 9}

func TestAnalyzeAndOrchestrate_Recommendation(t *testing.T) {
	svc, funnel := newTestAIOrchestrator(&scriptedClient{replies: []string{
		`{"loopType":"buddy_challenge","reasoning":"Strong score","confidence":87.4}`,
		`"Beat my 90% in Algebra!"`,
	}})

	res := svc.AnalyzeAndOrchestrate(context.Background(), model.EventSessionCompleted, model.UserContext{UserID: 1, Name: "Alex"}, aiSession)
	assert.True(t, res.ShouldTrigger)
	require.NotNil(t, res.LoopType)
	assert.Equal(t, model.LoopBuddyChallenge, *res.LoopType)
	assert.Equal(t, 87, res.Confidence)
	assert.Equal(t, "Beat my 90% in Algebra!", res.PersonalizedMessage)
	assert.False(t, res.Fallback)

	d := funnel.Decisions(1)[0]
	assert.Equal(t, "AI Orchestrator", d.Agent)
	assert.Equal(t, "Recommended: buddy_challenge", d.Action)
	assert.Equal(t, model.StatusTriggered, d.Status)
	assert.Equal(t, "Strong score (event: session_completed)", d.Reason)
}

func TestAnalyzeAndOrchestrate_NoRecommendation(t *testing.T) {
	svc, funnel := newTestAIOrchestrator(&scriptedClient{replies: []string{
		`{"loopType":null,"reasoning":"Too soon","confidence":60}`,
	}})

	res := svc.AnalyzeAndOrchestrate(context.Background(), "", model.UserContext{UserID: 1}, nil)
	assert.False(t, res.ShouldTrigger)
	assert.Nil(t, res.LoopType)

	d := funnel.Decisions(1)[0]
	assert.Equal(t, "No recommendation", d.Action)
	assert.Equal(t, model.StatusNoAction, d.Status)
	assert.Equal(t, "Too soon", d.Reason)
}

func TestAnalyzeAndOrchestrate_Fallback(t *testing.T) {
	svc, funnel := newTestAIOrchestrator(nil)

	res := svc.AnalyzeAndOrchestrate(context.Background(), model.EventSessionCompleted, model.UserContext{UserID: 1}, aiSession)
	assert.True(t, res.Fallback)
	assert.True(t, res.ShouldTrigger)
	assert.Equal(t, llm.FallbackReasoning, res.Reasoning)
	assert.Equal(t, llm.FallbackConfidence, res.Confidence)
	assert.Equal(t, llm.FallbackMessage(model.LoopBuddyChallenge), res.PersonalizedMessage)

	assert.Equal(t, model.StatusFallback, funnel.Decisions(1)[0].Status)
}

func TestAnalyzeSession_FallbackIsLogged(t *testing.T) {
	svc, funnel := newTestAIOrchestrator(&scriptedClient{replies: []string{"not json"}})

	res := svc.AnalyzeSession(context.Background(), *aiSession)
	assert.True(t, res.IsFallback())
	assert.Equal(t, llm.FallbackInsights(*aiSession), res.Value)

	d := funnel.Decisions(1)[0]
	assert.Equal(t, llm.CallSummarize, d.Action)
	assert.Equal(t, model.StatusFallback, d.Status)
}

func TestPersonalizeMessage(t *testing.T) {
	svc, funnel := newTestAIOrchestrator(&scriptedClient{replies: []string{"Join my study room tonight!"}})

	res := svc.PersonalizeMessage(context.Background(), model.PersonalizationContext{
		Sender:   model.PersonSummary{Name: "Alex", Role: "student"},
		LoopType: model.LoopVoiceRoomInvite,
	})
	assert.False(t, res.IsFallback())
	assert.Equal(t, "Join my study room tonight!", res.Value)
	assert.Empty(t, funnel.Decisions(0))
}
