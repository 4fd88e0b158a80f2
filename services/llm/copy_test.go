package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lac-hong-legacy/ven_growth/model"
)

type fakeClient struct {
	mu      sync.Mutex
	replies []string
	err     error
	delay   time.Duration
	calls   []fakeCall
}

type fakeCall struct {
	system, user string
	jsonMode     bool
}

func (f *fakeClient) Complete(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{system, user, jsonMode})
	var reply string
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return reply, f.err
}

var testSession = model.Session{
	SessionID:         "s1",
	Subject:           "Algebra",
	Duration:          20,
	QuestionsAnswered: 10,
	CorrectAnswers:    9,
	SkillsImproved:    []string{"factoring"},
}

func TestSummarizeSession_Ok(t *testing.T) {
	client := &fakeClient{replies: []string{`{"strengths":["Fast"],"gaps":["Signs"],"recommendations":["Drill"],"achievementSummary":"Nice!"}`}}
	svc := NewCopyService(client, time.Second)

	res := svc.SummarizeSession(context.Background(), testSession)

	require.False(t, res.IsFallback())
	assert.Equal(t, []string{"Fast"}, res.Value.Strengths)
	assert.Equal(t, "Nice!", res.Value.AchievementSummary)
	require.Len(t, client.calls, 1)
	assert.True(t, client.calls[0].jsonMode)
	assert.Contains(t, client.calls[0].user, "Score: 9/10 (90%)")
}

func TestSummarizeSession_FencedJSON(t *testing.T) {
	client := &fakeClient{replies: []string{"```json\n{\"strengths\":[\"a\"],\"achievementSummary\":\"b\"}\n```"}}
	res := NewCopyService(client, time.Second).SummarizeSession(context.Background(), testSession)

	require.False(t, res.IsFallback())
	assert.Equal(t, []string{}, res.Value.Gaps)
}

func TestSummarizeSession_Fallbacks(t *testing.T) {
	cases := map[string]*fakeClient{
		"transport error": {err: errors.New("connection refused")},
		"garbage":         {replies: []string{"I think they did great"}},
		"missing fields":  {replies: []string{`{"gaps":["x"]}`}},
		"empty":           {replies: []string{"   "}},
	}

	for name, client := range cases {
		t.Run(name, func(t *testing.T) {
			res := NewCopyService(client, time.Second).SummarizeSession(context.Background(), testSession)

			assert.True(t, res.IsFallback())
			assert.Error(t, res.Err)
			assert.Equal(t, FallbackInsights(testSession), res.Value)
			assert.Equal(t, "Great work completing your Algebra session! Keep up the momentum!", res.Value.AchievementSummary)
		})
	}
}

func TestSummarizeSession_Timeout(t *testing.T) {
	client := &fakeClient{replies: []string{`{"strengths":["a"],"achievementSummary":"b"}`}, delay: time.Second}
	svc := NewCopyService(client, 20*time.Millisecond)

	start := time.Now()
	res := svc.SummarizeSession(context.Background(), testSession)

	assert.True(t, res.IsFallback())
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestNilClientAlwaysFallsBack(t *testing.T) {
	svc := NewCopyService(nil, time.Second)
	assert.False(t, svc.Enabled())

	res := svc.Personalize(context.Background(), model.PersonalizationContext{LoopType: model.LoopVoiceRoomInvite})
	assert.True(t, res.IsFallback())
	assert.ErrorIs(t, res.Err, ErrNoClient)
	assert.Equal(t, "Come join our study room! Let's learn together 🎧", res.Value)
}

func TestPersonalize(t *testing.T) {
	client := &fakeClient{replies: []string{"\"Bet you can't beat 90% in Algebra! 🎯\""}}
	svc := NewCopyService(client, time.Second)

	res := svc.Personalize(context.Background(), model.PersonalizationContext{
		Sender:      model.PersonSummary{Name: "Alex", Role: "student"},
		Recipient:   &model.PersonSummary{Name: "Sam", Role: "student"},
		SessionData: &model.SessionSummary{Subject: "Algebra", Score: 90},
		LoopType:    model.LoopBuddyChallenge,
	})

	require.False(t, res.IsFallback())
	assert.Equal(t, "Bet you can't beat 90% in Algebra! 🎯", res.Value)
	assert.False(t, client.calls[0].jsonMode)
	assert.Contains(t, client.calls[0].user, "from Alex (student) who just scored 90% on Algebra to Sam (student)")
}

func TestPersonalize_UnknownLoop(t *testing.T) {
	client := &fakeClient{replies: []string{"hello"}}
	res := NewCopyService(client, time.Second).Personalize(context.Background(), model.PersonalizationContext{LoopType: "spam"})

	assert.True(t, res.IsFallback())
	assert.Equal(t, "Check out Varsity Tutors!", res.Value)
	assert.Empty(t, client.calls)
}

func TestRecommendLoop_Ok(t *testing.T) {
	client := &fakeClient{replies: []string{
		`{"loopType":"voice_room_invite","reasoning":"Streak is high","confidence":82.6}`,
		"Join my algebra room 🎧",
	}}
	var observed []string
	svc := NewCopyService(client, time.Second).OnCall(func(call string, source Source) {
		observed = append(observed, call+":"+string(source))
	})

	res := svc.RecommendLoop(context.Background(), model.UserContext{UserID: 1, Role: "student", Streak: 5}, &testSession)

	require.False(t, res.IsFallback())
	require.NotNil(t, res.Value.LoopType)
	assert.Equal(t, model.LoopVoiceRoomInvite, *res.Value.LoopType)
	assert.Equal(t, 83, res.Value.Confidence)
	assert.Equal(t, "Join my algebra room 🎧", res.Value.PersonalizedMessage)
	assert.Equal(t, []string{"personalize:ok", "recommend_loop:ok"}, observed)
	assert.True(t, strings.Contains(client.calls[0].user, "Latest Session: Algebra, 90% score"))
}

func TestRecommendLoop_NullLoop(t *testing.T) {
	client := &fakeClient{replies: []string{`{"loopType":null,"reasoning":"Not now","confidence":40}`}}
	res := NewCopyService(client, time.Second).RecommendLoop(context.Background(), model.UserContext{Role: "student"}, nil)

	require.False(t, res.IsFallback())
	assert.Nil(t, res.Value.LoopType)
	assert.Empty(t, res.Value.PersonalizedMessage)
	assert.Len(t, client.calls, 1)
}

func TestRecommendLoop_Fallbacks(t *testing.T) {
	cases := map[string]string{
		"unknown loop":      `{"loopType":"mega_loop","reasoning":"x","confidence":70}`,
		"confidence high":   `{"loopType":"buddy_challenge","reasoning":"x","confidence":140}`,
		"confidence low":    `{"loopType":"buddy_challenge","reasoning":"x","confidence":-1}`,
		"confidence absent": `{"loopType":"buddy_challenge","reasoning":"x"}`,
		"not json":          `buddy_challenge`,
	}

	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			client := &fakeClient{replies: []string{reply}}
			res := NewCopyService(client, time.Second).RecommendLoop(context.Background(), model.UserContext{Role: "student"}, &testSession)

			assert.True(t, res.IsFallback())
			require.NotNil(t, res.Value.LoopType)
			assert.Equal(t, model.LoopBuddyChallenge, *res.Value.LoopType)
			assert.Equal(t, FallbackReasoning, res.Value.Reasoning)
			assert.Equal(t, FallbackConfidence, res.Value.Confidence)
		})
	}
}

func TestFallbackRecommendation_LowScore(t *testing.T) {
	low := testSession
	low.CorrectAnswers = 7

	rec := FallbackRecommendation(&low)
	assert.Nil(t, rec.LoopType, "exactly 70%% does not qualify")

	assert.Nil(t, FallbackRecommendation(nil).LoopType)
}

func TestFallbackMessages(t *testing.T) {
	assert.Equal(t, "Hey! I just crushed my session! Think you can beat that? 🎯", FallbackMessage(model.LoopBuddyChallenge))
	assert.Equal(t, "Need help? A tutor is available for drop-in sessions! 📚", FallbackMessage(model.LoopTutorSpotlight))
	assert.Equal(t, "So proud of my child's progress! 🌟", FallbackMessage(model.LoopProudParentShare))
}
