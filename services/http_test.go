package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services/llm"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const testAdminToken = "s3cret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) (*fiber.App, *testEnv) {
	t.Helper()

	env := newTestEnv(t)
	app := NewApp(Routes{
		Orchestrator: env.orchestrator,
		Reward:       env.reward,
		Link:         env.link,
		AI:           NewAIOrchestratorService(llm.NewCopyService(nil, time.Second), env.funnel),
		Funnel:       env.funnel,
		Session:      env.session,
		Archive:      NewArchiveService(nil, "", env.funnel, time.UTC),
		AdminToken:   testAdminToken,
	})
	return app, env
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string, headers map[string]string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	_ = shared.Unmarshal(raw, &env)
	return resp.StatusCode, env
}

func TestHTTP_Ping(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `"pong"`, string(body.Data))
}

func TestHTTP_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/api/v1/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Found", body.Message)
}

func TestHTTP_SelectLoop(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/orchestrator/select",
		`{"event":"session_completed","data":{"score":85}}`, nil)
	require.Equal(t, http.StatusOK, status)

	var resp dto.SelectLoopResponse
	require.NoError(t, shared.Unmarshal(body.Data, &resp))
	require.NotNil(t, resp.LoopType)
	assert.Equal(t, model.LoopBuddyChallenge, *resp.LoopType)
}

func TestHTTP_DecideValidation(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/orchestrator/decide",
		`{"loop_type":"buddy_challenge"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/orchestrator/decide", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHTTP_Decide(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/orchestrator/decide",
		`{"user_id":1,"loop_type":"buddy_challenge","event":"session_completed"}`, nil)
	require.Equal(t, http.StatusOK, status)

	var decision model.LoopTriggerDecision
	require.NoError(t, shared.Unmarshal(body.Data, &decision))
	assert.True(t, decision.ShouldTrigger)
}

func TestHTTP_ResetRequiresAdminToken(t *testing.T) {
	app, env := newTestApp(t)
	env.orchestrator.Decide(t.Context(), 1, model.LoopBuddyChallenge, "")

	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/orchestrator/reset", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/orchestrator/reset", "",
		map[string]string{shared.AdminTokenHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, http.StatusUnauthorized, body.Code)
	assert.Equal(t, "Invalid admin token", body.Message)
	require.Len(t, env.funnel.Decisions(0), 1, "rejected resets leave tracking alone")

	status, body = doRequest(t, app, http.MethodPost, "/api/v1/orchestrator/reset", "",
		map[string]string{shared.AdminTokenHeader: testAdminToken})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Tracking reset", body.Message)
	assert.Empty(t, env.funnel.Decisions(0))
}

func TestHTTP_AdminRoutesForbiddenWithoutToken(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(Routes{
		Orchestrator: env.orchestrator,
		Reward:       env.reward,
		Link:         env.link,
		AI:           NewAIOrchestratorService(llm.NewCopyService(nil, time.Second), env.funnel),
		Funnel:       env.funnel,
		Session:      env.session,
		Archive:      NewArchiveService(nil, "", env.funnel, time.UTC),
	})

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/orchestrator/reset", "", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden", body.Message)
}

func TestHTTP_ArchiveDisabled(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/admin/archive", "",
		map[string]string{shared.AdminTokenHeader: testAdminToken})
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestHTTP_InviteRoundTrip(t *testing.T) {
	app, env := newTestApp(t)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/invite",
		`{"sender_id":1,"sender_name":"Alex","subject":"Algebra","session_id":"sess-1","reward_amount":50}`, nil)
	require.Equal(t, http.StatusCreated, status)

	var created dto.CreateChallengeResponse
	require.NoError(t, shared.Unmarshal(body.Data, &created))
	require.NotEmpty(t, created.Code)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/invite/parse?url="+url.QueryEscape(created.Link), "", nil)
	require.Equal(t, http.StatusOK, status)

	var link model.ChallengeLink
	require.NoError(t, shared.Unmarshal(body.Data, &link))
	assert.Equal(t, "Alex", link.FromUserName)
	assert.Equal(t, "Algebra", link.Subject)

	completeURL := "/api/v1/invite/" + created.Code + "/complete"
	status, body = doRequest(t, app, http.MethodPost, completeURL, `{"user_id":2,"from_user_id":1}`, nil)
	require.Equal(t, http.StatusOK, status)

	var completed dto.CompleteChallengeResponse
	require.NoError(t, shared.Unmarshal(body.Data, &completed))
	assert.False(t, completed.AlreadyCompleted)
	assert.NotEmpty(t, completed.Notifications)

	status, body = doRequest(t, app, http.MethodPost, completeURL, `{"user_id":2,"from_user_id":1}`, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, shared.Unmarshal(body.Data, &completed))
	assert.True(t, completed.AlreadyCompleted)

	counts := env.funnel.FunnelCounts()
	assert.Equal(t, int64(1), counts[model.FunnelLinkCreated])
	assert.Equal(t, int64(1), counts[model.FunnelLinkClicked])
	assert.Equal(t, int64(1), counts[model.FunnelConversion])
}

func TestHTTP_LevelProgress(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/api/v1/rewards/level-progress?points=1500", "", nil)
	require.Equal(t, http.StatusOK, status)

	var progress model.LevelProgress
	require.NoError(t, shared.Unmarshal(body.Data, &progress))
	assert.Equal(t, int64(2), progress.Level)
	assert.Equal(t, int64(3), progress.NextLevel)
	assert.InDelta(t, 50.0, progress.ProgressPercent, 0.001)

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/rewards/level-progress?points=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHTTP_AIOrchestrateFallsBack(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/ai/orchestrate",
		`{"event":"session_completed","user_context":{"user_id":1,"name":"Alex"}}`, nil)
	require.Equal(t, http.StatusOK, status)

	var res model.AIOrchestrationResult
	require.NoError(t, shared.Unmarshal(body.Data, &res))
	assert.True(t, res.Fallback)
	assert.Equal(t, llm.FallbackReasoning, res.Reasoning)
}
