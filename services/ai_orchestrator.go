package services

import (
	"context"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services/llm"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const AI_ORCHESTRATOR_SVC = "ai_orchestrator_svc"

type llmConfig struct {
	Provider      string        `envconfig:"LLM_PROVIDER" default:"none"`
	OpenAIKey     string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	GeminiKey     string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL"`
	Timeout       time.Duration `envconfig:"LLM_TIMEOUT" default:"8s"`
}

// AIOrchestratorService asks the LLM collaborator which loop to run and for copy. It never
// returns the collaborator's errors; fallbacks are logged to the decision log instead.
type AIOrchestratorService struct {
	appContext.DefaultService

	cfg        llmConfig
	copySvc    *llm.CopyService
	funnelSvc  *FunnelService
	monitoring *MonitoringService
}

func (svc AIOrchestratorService) Id() string {
	return AI_ORCHESTRATOR_SVC
}

func (svc *AIOrchestratorService) Configure(ctx *appContext.Context) error {
	if err := envconfig.Process("", &svc.cfg); err != nil {
		return err
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *AIOrchestratorService) Start() error {
	svc.funnelSvc = svc.Service(FUNNEL_SVC).(*FunnelService)
	svc.monitoring = svc.Service(MONITORING_SVC).(*MonitoringService)

	client, err := llm.NewClient(context.Background(), llm.Config{
		Provider:      svc.cfg.Provider,
		OpenAIKey:     svc.cfg.OpenAIKey,
		OpenAIBaseURL: svc.cfg.OpenAIBaseURL,
		OpenAIModel:   svc.cfg.OpenAIModel,
		GeminiKey:     svc.cfg.GeminiKey,
		GeminiModel:   svc.cfg.GeminiModel,
		Timeout:       svc.cfg.Timeout,
	})
	if err != nil {
		return err
	}

	svc.copySvc = llm.NewCopyService(client, svc.cfg.Timeout).OnCall(func(call string, source llm.Source) {
		svc.monitoring.RecordLLMCall(call, string(source))
	})

	log.WithFields(log.Fields{
		"provider": svc.cfg.Provider,
		"enabled":  svc.copySvc.Enabled(),
	}).Info("LLM collaborator configured")
	return nil
}

func NewAIOrchestratorService(copySvc *llm.CopyService, funnelSvc *FunnelService) *AIOrchestratorService {
	return &AIOrchestratorService{copySvc: copySvc, funnelSvc: funnelSvc}
}

func (svc *AIOrchestratorService) AnalyzeAndOrchestrate(ctx context.Context, event string, uc model.UserContext, session *model.Session) model.AIOrchestrationResult {
	if len(uc.RecentActivity) == 0 && session != nil {
		uc.RecentActivity = []string{fmt.Sprintf("%s (%d%%)", session.Subject, session.Accuracy())}
	}

	res := svc.copySvc.RecommendLoop(ctx, uc, session)
	rec := res.Value

	action := "No recommendation"
	status := model.StatusNoAction
	if rec.LoopType != nil {
		action = "Recommended: " + string(*rec.LoopType)
		status = model.StatusTriggered
	}
	if res.IsFallback() {
		status = model.StatusFallback
	}

	reason := rec.Reasoning
	if event != "" {
		reason = fmt.Sprintf("%s (event: %s)", reason, event)
	}
	svc.funnelSvc.LogDecision(model.DecisionLogEntry{
		Agent:  shared.AgentAIOrchestrator,
		Action: action,
		Reason: reason,
		Status: status,
	})

	return model.AIOrchestrationResult{
		ShouldTrigger:       rec.LoopType != nil,
		LoopType:            rec.LoopType,
		Reasoning:           rec.Reasoning,
		Confidence:          rec.Confidence,
		PersonalizedMessage: rec.PersonalizedMessage,
		Fallback:            res.IsFallback(),
	}
}

func (svc *AIOrchestratorService) AnalyzeSession(ctx context.Context, session model.Session) llm.Result[model.SessionInsights] {
	res := svc.copySvc.SummarizeSession(ctx, session)
	if res.IsFallback() {
		svc.logFallback(llm.CallSummarize, res.Err)
	}
	return res
}

func (svc *AIOrchestratorService) PersonalizeMessage(ctx context.Context, pc model.PersonalizationContext) llm.Result[string] {
	res := svc.copySvc.Personalize(ctx, pc)
	if res.IsFallback() {
		svc.logFallback(llm.CallPersonalize, res.Err)
	}
	return res
}

func (svc *AIOrchestratorService) logFallback(call string, err error) {
	reason := "LLM unavailable, used rule-based output"
	if err != nil {
		reason = fmt.Sprintf("%s: %v", reason, err)
	}
	svc.funnelSvc.LogDecision(model.DecisionLogEntry{
		Agent:  shared.AgentAIOrchestrator,
		Action: call,
		Reason: reason,
		Status: model.StatusFallback,
	})
}
