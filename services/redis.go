package services

import (
	"context"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type redisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"growth"`
}

// RedisService owns the redis connection. It stays idle when REDIS_ADDR is empty.
type RedisService struct {
	appContext.DefaultService

	cfg   redisConfig
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	if err := envconfig.Process("", &svc.cfg); err != nil {
		return err
	}
	if svc.cfg.Addr != "" {
		svc.redis = redis.NewClient(&redis.Options{
			Addr:     svc.cfg.Addr,
			Password: svc.cfg.Password,
			DB:       svc.cfg.DB,
		})
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := svc.redis.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.WithFields(log.Fields{"addr": svc.cfg.Addr, "db": svc.cfg.DB}).Info("Connected to Redis")
	return nil
}

func (svc *RedisService) Shutdown() {
	if svc.redis != nil {
		_ = svc.redis.Close()
	}
}

func (svc *RedisService) Enabled() bool {
	return svc.redis != nil
}

func (svc *RedisService) GetClient() *redis.Client {
	return svc.redis
}

func (svc *RedisService) Prefix() string {
	return svc.cfg.Prefix
}
