package services

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/services/store"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const (
	RATE_LIMIT_SVC = "rate_limit_svc"

	EndpointGeneral = "api_general"
	EndpointAI      = "api_ai"
	EndpointAdmin   = "api_admin"
)

type rateLimitEnv struct {
	Enabled       bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	GeneralLimit  int64         `envconfig:"RATE_LIMIT_GENERAL" default:"1000"`
	GeneralWindow time.Duration `envconfig:"RATE_LIMIT_GENERAL_WINDOW" default:"1h"`
	AILimit       int64         `envconfig:"RATE_LIMIT_AI" default:"60"`
	AIWindow      time.Duration `envconfig:"RATE_LIMIT_AI_WINDOW" default:"10m"`
	AdminLimit    int64         `envconfig:"RATE_LIMIT_ADMIN" default:"10"`
	AdminWindow   time.Duration `envconfig:"RATE_LIMIT_ADMIN_WINDOW" default:"10m"`
}

// RateLimitConfig is a fixed window: at most MaxRequests per WindowSize per identifier.
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int64
	WindowSize   time.Duration
	Message      string
}

// RateLimitService counts requests per client IP in the tracking store.
type RateLimitService struct {
	appContext.DefaultService

	env     rateLimitEnv
	configs map[string]RateLimitConfig

	tracking *TrackingService
}

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	if err := envconfig.Process("", &svc.env); err != nil {
		return err
	}
	svc.initConfigs()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.tracking = svc.Service(TRACKING_SVC).(*TrackingService)
	return nil
}

func NewRateLimitService(tracking *TrackingService, configs ...RateLimitConfig) *RateLimitService {
	svc := &RateLimitService{tracking: tracking, env: rateLimitEnv{Enabled: true}}
	svc.configs = make(map[string]RateLimitConfig, len(configs))
	for _, cfg := range configs {
		svc.configs[cfg.EndpointType] = cfg
	}
	return svc
}

func (svc *RateLimitService) initConfigs() {
	svc.configs = map[string]RateLimitConfig{
		EndpointGeneral: {
			EndpointType: EndpointGeneral,
			MaxRequests:  svc.env.GeneralLimit,
			WindowSize:   svc.env.GeneralWindow,
			Message:      "Too many requests. Please slow down.",
		},
		EndpointAI: {
			EndpointType: EndpointAI,
			MaxRequests:  svc.env.AILimit,
			WindowSize:   svc.env.AIWindow,
			Message:      "Too many AI requests. Please try again later.",
		},
		EndpointAdmin: {
			EndpointType: EndpointAdmin,
			MaxRequests:  svc.env.AdminLimit,
			WindowSize:   svc.env.AdminWindow,
			Message:      "Rate limit exceeded. Access temporarily blocked.",
		},
	}
}

func rateLimitKey(endpointType, identifier string, windowStart time.Time) string {
	return store.Key("ratelimit", endpointType, identifier, strconv.FormatInt(windowStart.Unix(), 10))
}

// IsAllowed counts one request for identifier. Unknown endpoint types are always allowed.
func (svc *RateLimitService) IsAllowed(ctx context.Context, identifier, endpointType string) (*dto.RateLimitInfo, error) {
	cfg, ok := svc.configs[endpointType]
	if !ok || cfg.MaxRequests <= 0 || cfg.WindowSize <= 0 {
		return &dto.RateLimitInfo{Allowed: true, Remaining: -1}, nil
	}

	now := svc.tracking.Clock().Now()
	windowStart := now.Truncate(cfg.WindowSize)
	resetTime := windowStart.Add(cfg.WindowSize)

	count, err := svc.tracking.Store().IncrementBy(ctx, rateLimitKey(endpointType, identifier, windowStart), 1, resetTime.Sub(now))
	if err != nil {
		return nil, err
	}

	remaining := cfg.MaxRequests - count
	if remaining < 0 {
		remaining = 0
	}
	return &dto.RateLimitInfo{
		Allowed:   count <= cfg.MaxRequests,
		Limit:     cfg.MaxRequests,
		Remaining: remaining,
		ResetTime: &resetTime,
	}, nil
}

// IPRateLimit limits requests per client IP for endpointType. Store failures let the request through.
func (svc *RateLimitService) IPRateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !svc.env.Enabled {
			return c.Next()
		}

		ip := getClientIP(c)
		info, err := svc.IsAllowed(c.UserContext(), ip, endpointType)
		if err != nil {
			log.WithFields(log.Fields{"ip": ip, "endpoint": endpointType}).WithError(err).Error("Rate limit check failed")
			return c.Next()
		}

		svc.addRateLimitHeaders(c, info)
		if !info.Allowed {
			return svc.handleRateLimitExceeded(c, endpointType, info)
		}
		return c.Next()
	}
}

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info.Remaining < 0 {
		return
	}
	c.Set("X-RateLimit-Limit", strconv.FormatInt(info.Limit, 10))
	c.Set("X-RateLimit-Remaining", strconv.FormatInt(info.Remaining, 10))
	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (svc *RateLimitService) handleRateLimitExceeded(c *fiber.Ctx, endpointType string, info *dto.RateLimitInfo) error {
	message := "Too many requests. Please try again later."
	if cfg, ok := svc.configs[endpointType]; ok && cfg.Message != "" {
		message = cfg.Message
	}

	response := map[string]interface{}{
		"error":   "Rate limit exceeded",
		"message": message,
	}
	if info.ResetTime != nil {
		retryAfter := int64(info.ResetTime.Sub(svc.tracking.Clock().Now()).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(retryAfter, 10))
		response["retry_after"] = retryAfter
	}

	return shared.ResponseJSON(c, http.StatusTooManyRequests, message, response)
}

func getClientIP(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	addr := c.Context().RemoteAddr().String()
	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return ip
}
