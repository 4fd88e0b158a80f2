package main

import (
	"os"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/services"
)

// @title ven_growth API
// @version 1.0
// @description Viral loop orchestration, rewards, challenge links and funnel analytics.
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Msg("Error loading .env file")
	}

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	ctx, err := context.NewCtx(
		&services.MonitoringService{},
		&services.RedisService{},
		&services.TrackingService{},
		&services.DatabaseService{},
		&services.FunnelService{},
		&services.EmailService{},
		&services.RewardService{},
		&services.OrchestratorService{},
		&services.LinkService{},
		&services.AIOrchestratorService{},
		&services.SessionService{},
		&services.RateLimitService{},
		&services.ArchiveService{},
		&services.JobsService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service context stopped")
		return
	}
}
