package llm

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/model"
)

const (
	CallSummarize   = "summarize_session"
	CallPersonalize = "personalize"
	CallRecommend   = "recommend_loop"
)

// CopyService wraps a Client with a per-call timeout, output validation and fallbacks.
// A nil client is valid and always falls back.
type CopyService struct {
	client  Client
	timeout time.Duration
	observe func(call string, source Source)
}

func NewCopyService(client Client, timeout time.Duration) *CopyService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CopyService{client: client, timeout: timeout}
}

// OnCall registers a hook invoked once per call with the outcome, used for metrics.
func (s *CopyService) OnCall(fn func(call string, source Source)) *CopyService {
	s.observe = fn
	return s
}

func (s *CopyService) Enabled() bool {
	return s.client != nil
}

func (s *CopyService) complete(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	if s.client == nil {
		return "", ErrNoClient
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		text, err := s.client.Complete(ctx, system, user, jsonMode)
		done <- reply{text, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		text := strings.TrimSpace(r.text)
		if text == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("llm call timed out: %w", ctx.Err())
	}
}

func (s *CopyService) record(call string, source Source, err error) {
	if source == SourceFallback {
		log.WithFields(log.Fields{
			"call":  call,
			"error": err,
		}).Warn("LLM call fell back to rule-based output")
	}
	if s.observe != nil {
		s.observe(call, source)
	}
}

func (s *CopyService) SummarizeSession(ctx context.Context, session model.Session) Result[model.SessionInsights] {
	text, err := s.complete(ctx, systemSessionAnalyst, sessionPrompt(session), true)
	if err != nil {
		s.record(CallSummarize, SourceFallback, err)
		return Fallback(FallbackInsights(session), err)
	}

	var insights model.SessionInsights
	if err := unmarshalJSON(text, &insights); err != nil {
		s.record(CallSummarize, SourceFallback, err)
		return Fallback(FallbackInsights(session), err)
	}
	if len(insights.Strengths) == 0 || strings.TrimSpace(insights.AchievementSummary) == "" {
		err := fmt.Errorf("%w: missing strengths or achievementSummary", ErrInvalidResponse)
		s.record(CallSummarize, SourceFallback, err)
		return Fallback(FallbackInsights(session), err)
	}
	if insights.Gaps == nil {
		insights.Gaps = []string{}
	}
	if insights.Recommendations == nil {
		insights.Recommendations = []string{}
	}

	s.record(CallSummarize, SourceOK, nil)
	return Ok(insights)
}

func (s *CopyService) Personalize(ctx context.Context, pc model.PersonalizationContext) Result[string] {
	if !pc.LoopType.Valid() {
		err := fmt.Errorf("%w: unknown loop type %q", ErrInvalidResponse, pc.LoopType)
		s.record(CallPersonalize, SourceFallback, err)
		return Fallback(FallbackMessage(pc.LoopType), err)
	}

	text, err := s.complete(ctx, systemCopywriter, personalizePrompt(pc), false)
	if err != nil {
		s.record(CallPersonalize, SourceFallback, err)
		return Fallback(FallbackMessage(pc.LoopType), err)
	}

	message := strings.Trim(text, "\"' \n")
	if message == "" {
		s.record(CallPersonalize, SourceFallback, ErrEmptyResponse)
		return Fallback(FallbackMessage(pc.LoopType), ErrEmptyResponse)
	}

	s.record(CallPersonalize, SourceOK, nil)
	return Ok(message)
}

type rawRecommendation struct {
	LoopType   *string  `json:"loopType"`
	Reasoning  string   `json:"reasoning"`
	Confidence *float64 `json:"confidence"`
}

// RecommendLoop asks for the best loop for the user. When one is recommended a personalized
// message is attached; that message may itself be a fallback without affecting the result source.
func (s *CopyService) RecommendLoop(ctx context.Context, uc model.UserContext, session *model.Session) Result[model.LoopRecommendation] {
	rec, err := s.recommend(ctx, uc, session)
	if err != nil {
		s.record(CallRecommend, SourceFallback, err)
		return Fallback(FallbackRecommendation(session), err)
	}

	if rec.LoopType != nil {
		pc := model.PersonalizationContext{
			Sender: model.PersonSummary{
				Name:   senderName(uc),
				Role:   uc.Role,
				Streak: uc.Streak,
			},
			LoopType: *rec.LoopType,
		}
		if session != nil {
			pc.SessionData = &model.SessionSummary{
				Subject:        session.Subject,
				Score:          session.Accuracy(),
				SkillsImproved: session.SkillsImproved,
			}
		}
		rec.PersonalizedMessage = s.Personalize(ctx, pc).Value
	}

	s.record(CallRecommend, SourceOK, nil)
	return Ok(rec)
}

func (s *CopyService) recommend(ctx context.Context, uc model.UserContext, session *model.Session) (model.LoopRecommendation, error) {
	text, err := s.complete(ctx, systemStrategist, recommendPrompt(uc, session), true)
	if err != nil {
		return model.LoopRecommendation{}, err
	}

	var raw rawRecommendation
	if err := unmarshalJSON(text, &raw); err != nil {
		return model.LoopRecommendation{}, err
	}
	if raw.Confidence == nil || *raw.Confidence < 0 || *raw.Confidence > 100 || math.IsNaN(*raw.Confidence) {
		return model.LoopRecommendation{}, fmt.Errorf("%w: confidence out of range", ErrInvalidResponse)
	}

	rec := model.LoopRecommendation{
		Reasoning:  strings.TrimSpace(raw.Reasoning),
		Confidence: int(math.Round(*raw.Confidence)),
	}
	if raw.LoopType != nil && *raw.LoopType != "" && *raw.LoopType != "null" {
		loop, ok := model.ParseLoopType(*raw.LoopType)
		if !ok {
			return model.LoopRecommendation{}, fmt.Errorf("%w: unknown loop type %q", ErrInvalidResponse, *raw.LoopType)
		}
		rec.LoopType = &loop
	}
	return rec, nil
}

func senderName(uc model.UserContext) string {
	if uc.Name != "" {
		return uc.Name
	}
	return "User"
}

// unmarshalJSON accepts a bare JSON object or one wrapped in a markdown code fence.
func unmarshalJSON(text string, v interface{}) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	if err := sonic.UnmarshalString(strings.TrimSpace(text), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
