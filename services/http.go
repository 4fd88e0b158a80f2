package services

import (
	"fmt"
	"net/http"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/docs"
	"github.com/lac-hong-legacy/ven_growth/services/handlers"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const HTTP_SVC = "http_svc"

type httpConfig struct {
	Port       int    `envconfig:"HTTP_PORT" default:"8000"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"INFO"`
	AdminToken string `envconfig:"ADMIN_TOKEN"`
}

type HttpService struct {
	context.DefaultService

	cfg httpConfig
	app *fiber.App
}

// Routes holds everything the HTTP layer dispatches to. Tests fill it with fakes.
type Routes struct {
	Orchestrator handlers.OrchestratorServiceInterface
	Reward       handlers.RewardServiceInterface
	Link         handlers.LinkServiceInterface
	AI           handlers.AIServiceInterface
	Funnel       handlers.FunnelServiceInterface
	Session      handlers.SessionServiceInterface
	Archive      handlers.ArchiveServiceInterface

	RateLimit  *RateLimitService
	Monitoring *MonitoringService
	AdminToken string
	LogLevel   string
}

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if err := envconfig.Process("", &svc.cfg); err != nil {
		return err
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.app = NewApp(Routes{
		Orchestrator: svc.Service(ORCHESTRATOR_SVC).(*OrchestratorService),
		Reward:       svc.Service(REWARD_SVC).(*RewardService),
		Link:         svc.Service(LINK_SVC).(*LinkService),
		AI:           svc.Service(AI_ORCHESTRATOR_SVC).(*AIOrchestratorService),
		Funnel:       svc.Service(FUNNEL_SVC).(*FunnelService),
		Session:      svc.Service(SESSION_SVC).(*SessionService),
		Archive:      svc.Service(ARCHIVE_SVC).(*ArchiveService),
		RateLimit:    svc.Service(RATE_LIMIT_SVC).(*RateLimitService),
		Monitoring:   svc.Service(MONITORING_SVC).(*MonitoringService),
		AdminToken:   svc.cfg.AdminToken,
		LogLevel:     svc.cfg.LogLevel,
	})

	log.WithField("port", svc.cfg.Port).Info("HTTP server listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.cfg.Port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// NewApp builds the fiber app with every route registered.
func NewApp(r Routes) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		ErrorHandler: ErrorHandler,
	})

	docs.SwaggerInfo.BasePath = ""
	app.Use(recover.New())
	if r.LogLevel == "TRACE" {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, " + shared.AdminTokenHeader,
	}))
	app.Use(MonitoringMiddleware(r.Monitoring))

	app.Get("/ping", ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1")
	if r.RateLimit != nil {
		v1.Use(r.RateLimit.IPRateLimit(EndpointGeneral))
	}
	v1.Get("/ping", ping)

	orchestratorHandler := handlers.NewOrchestratorHandler(r.Orchestrator)
	rewardHandler := handlers.NewRewardHandler(r.Reward)
	linkHandler := handlers.NewLinkHandler(r.Link)
	aiHandler := handlers.NewAIHandler(r.AI)
	analyticsHandler := handlers.NewAnalyticsHandler(r.Funnel)
	sessionHandler := handlers.NewSessionHandler(r.Session)
	adminHandler := handlers.NewAdminHandler(r.Orchestrator, r.Archive, r.AdminToken)

	admin := []fiber.Handler{adminHandler.RequireAdminToken()}
	if r.RateLimit != nil {
		admin = append([]fiber.Handler{r.RateLimit.IPRateLimit(EndpointAdmin)}, admin...)
	}

	orchestrator := v1.Group("/orchestrator")
	orchestrator.Post("/select", orchestratorHandler.SelectLoop)
	orchestrator.Post("/decide", orchestratorHandler.Decide)
	orchestrator.Post("/evaluate", orchestratorHandler.Evaluate)
	orchestrator.Post("/reset", append(admin, adminHandler.ResetTracking)...)

	ai := v1.Group("/ai")
	if r.RateLimit != nil {
		ai.Use(r.RateLimit.IPRateLimit(EndpointAI))
	}
	ai.Post("/orchestrate", aiHandler.Orchestrate)
	ai.Post("/analyze-session", aiHandler.AnalyzeSession)
	ai.Post("/personalize-message", aiHandler.PersonalizeMessage)

	rewards := v1.Group("/rewards")
	rewards.Post("/award", rewardHandler.Award)
	rewards.Post("/streak", rewardHandler.CheckStreak)
	rewards.Post("/level-up", rewardHandler.CheckLevelUp)
	rewards.Get("/level-progress", rewardHandler.LevelProgress)
	rewards.Get("/:userId", rewardHandler.GetBalance)

	invite := v1.Group("/invite")
	invite.Post("/", linkHandler.CreateChallenge)
	invite.Get("/parse", linkHandler.ParseChallenge)
	invite.Post("/:code/complete", linkHandler.CompleteChallenge)

	v1.Post("/sessions/complete", sessionHandler.CompleteSession)

	analytics := v1.Group("/analytics")
	analytics.Get("/decisions", analyticsHandler.GetDecisions)
	analytics.Get("/funnel", analyticsHandler.GetFunnel)
	analytics.Post("/funnel", analyticsHandler.TrackFunnelEvent)

	v1.Post("/admin/archive", append(admin, adminHandler.ExportArchive)...)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	return app
}

// ErrorHandler writes AppErrors with their own status, fiber errors with theirs and
// everything else as a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			log.WithError(err).Error("Request failed")
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseInternalError(c, err)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}
