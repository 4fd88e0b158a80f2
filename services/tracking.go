package services

import (
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/services/store"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const (
	TRACKING_SVC = "tracking_svc"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type trackingConfig struct {
	Backend  string `envconfig:"TRACKING_BACKEND" default:"memory"`
	Timezone string `envconfig:"APP_TIMEZONE" default:"UTC"`
}

// TrackingService picks the store behind throttle counters, cooldowns, milestone markers and
// balances, and owns the clock and timezone every time-based rule reads.
type TrackingService struct {
	context.DefaultService

	cfg      trackingConfig
	store    store.Store
	memory   *store.MemoryStore
	clock    shared.Clock
	location *time.Location
}

func (svc TrackingService) Id() string {
	return TRACKING_SVC
}

func (svc *TrackingService) Configure(ctx *context.Context) error {
	if err := envconfig.Process("", &svc.cfg); err != nil {
		return err
	}

	loc, err := time.LoadLocation(svc.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", svc.cfg.Timezone, err)
	}
	svc.location = loc
	svc.clock = shared.SystemClock{}

	return svc.DefaultService.Configure(ctx)
}

func (svc *TrackingService) Start() error {
	switch svc.cfg.Backend {
	case BackendRedis:
		redisSvc := svc.Service(REDIS_SVC).(*RedisService)
		if !redisSvc.Enabled() {
			return fmt.Errorf("TRACKING_BACKEND=redis requires REDIS_ADDR")
		}
		svc.store = store.NewRedisStore(redisSvc.GetClient(), redisSvc.Prefix())
	case BackendMemory:
		svc.memory = store.NewMemoryStore(svc.clock)
		svc.store = svc.memory
	default:
		return fmt.Errorf("unknown TRACKING_BACKEND %q", svc.cfg.Backend)
	}

	log.WithFields(log.Fields{
		"backend":  svc.cfg.Backend,
		"timezone": svc.location.String(),
	}).Info("Tracking store ready")
	return nil
}

func (svc *TrackingService) Store() store.Store {
	return svc.store
}

func (svc *TrackingService) Clock() shared.Clock {
	return svc.clock
}

func (svc *TrackingService) Location() *time.Location {
	return svc.location
}

// Sweep drops expired keys from the in-memory backend. Redis expires keys itself.
func (svc *TrackingService) Sweep() int {
	if svc.memory == nil {
		return 0
	}
	return svc.memory.Sweep()
}

// NewTrackingService builds a memory-backed service outside the container.
func NewTrackingService(clock shared.Clock, loc *time.Location) *TrackingService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	memory := store.NewMemoryStore(clock)
	svc := NewTrackingServiceWithStore(memory, clock, loc)
	svc.memory = memory
	return svc
}

// NewTrackingServiceWithStore builds a service over an existing store, such as a RedisStore.
func NewTrackingServiceWithStore(st store.Store, clock shared.Clock, loc *time.Location) *TrackingService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	backend := BackendRedis
	if _, ok := st.(*store.MemoryStore); ok {
		backend = BackendMemory
	}
	return &TrackingService{
		cfg:      trackingConfig{Backend: backend, Timezone: loc.String()},
		store:    st,
		clock:    clock,
		location: loc,
	}
}
