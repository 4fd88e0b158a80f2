package services

import (
	"context"

	appContext "github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const JOBS_SVC = "jobs_svc"

type jobsConfig struct {
	SweepSchedule  string `envconfig:"JOBS_SWEEP_SCHEDULE" default:"@every 1h"`
	ExportSchedule string `envconfig:"JOBS_EXPORT_SCHEDULE" default:"5 0 * * *"`
}

// JobsService runs the periodic maintenance tasks: sweeping expired in-memory keys and
// exporting the previous day's funnel events.
type JobsService struct {
	appContext.DefaultService

	cfg        jobsConfig
	cron       *cron.Cron
	tracking   *TrackingService
	archiveSvc *ArchiveService
}

func (svc JobsService) Id() string {
	return JOBS_SVC
}

func (svc *JobsService) Configure(ctx *appContext.Context) error {
	if err := envconfig.Process("", &svc.cfg); err != nil {
		return err
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *JobsService) Start() error {
	svc.tracking = svc.Service(TRACKING_SVC).(*TrackingService)
	svc.archiveSvc = svc.Service(ARCHIVE_SVC).(*ArchiveService)
	return svc.schedule()
}

func NewJobsService(tracking *TrackingService, archiveSvc *ArchiveService, sweepSchedule, exportSchedule string) *JobsService {
	return &JobsService{
		cfg:        jobsConfig{SweepSchedule: sweepSchedule, ExportSchedule: exportSchedule},
		tracking:   tracking,
		archiveSvc: archiveSvc,
	}
}

func (svc *JobsService) schedule() error {
	svc.cron = cron.New(cron.WithLocation(svc.tracking.Location()))

	if _, err := svc.cron.AddFunc(svc.cfg.SweepSchedule, svc.RunSweep); err != nil {
		return err
	}
	if svc.archiveSvc.Enabled() {
		if _, err := svc.cron.AddFunc(svc.cfg.ExportSchedule, func() {
			svc.RunExport(context.Background())
		}); err != nil {
			return err
		}
	}

	svc.cron.Start()
	log.WithFields(log.Fields{
		"sweep":  svc.cfg.SweepSchedule,
		"export": svc.archiveSvc.Enabled(),
	}).Info("Job scheduler started")
	return nil
}

func (svc *JobsService) Shutdown() {
	if svc.cron == nil {
		return
	}
	<-svc.cron.Stop().Done()
	log.Info("Job scheduler stopped")
}

func (svc *JobsService) RunSweep() {
	if removed := svc.tracking.Sweep(); removed > 0 {
		log.WithField("removed", removed).Debug("[CRON] Swept expired tracking keys")
	}
}

// RunExport uploads yesterday's funnel events.
func (svc *JobsService) RunExport(ctx context.Context) {
	yesterday := svc.tracking.Clock().Now().In(svc.tracking.Location()).AddDate(0, 0, -1)
	if _, err := svc.archiveSvc.ExportDay(ctx, yesterday); err != nil {
		log.WithError(err).Error("[CRON] Funnel export failed")
	}
}

// Entries lists the scheduled job count, for health output.
func (svc *JobsService) Entries() int {
	if svc.cron == nil {
		return 0
	}
	return len(svc.cron.Entries())
}
