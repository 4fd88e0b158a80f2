package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_growth/dto"
	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const (
	ARCHIVE_SVC = "archive_svc"

	archivePrefix      = "funnel/"
	archiveContentType = "application/x-ndjson"
)

type archiveConfig struct {
	Enabled    bool   `envconfig:"ARCHIVE_ENABLED" default:"false"`
	Endpoint   string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY" default:"admin"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY" default:"password123"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" default:"ven-growth"`
}

// ObjectWriter is the part of the MinIO client the archive needs.
type ObjectWriter interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ArchiveService exports a day of funnel events as JSON lines to object storage.
type ArchiveService struct {
	appContext.DefaultService

	cfg       archiveConfig
	client    ObjectWriter
	funnelSvc *FunnelService
	dbSvc     *DatabaseService
	location  *time.Location
}

func (svc ArchiveService) Id() string {
	return ARCHIVE_SVC
}

func (svc *ArchiveService) Configure(ctx *appContext.Context) error {
	if err := envconfig.Process("", &svc.cfg); err != nil {
		return err
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ArchiveService) Start() error {
	svc.funnelSvc = svc.Service(FUNNEL_SVC).(*FunnelService)
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.location = svc.Service(TRACKING_SVC).(*TrackingService).Location()

	if !svc.cfg.Enabled {
		log.Info("Funnel archive disabled")
		return nil
	}

	client, err := minio.New(svc.cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.cfg.AccessKey, svc.cfg.SecretKey, ""),
		Secure: svc.cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}
	svc.client = client

	if err := svc.ensureBucket(context.Background()); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.WithFields(log.Fields{
		"endpoint": svc.cfg.Endpoint,
		"bucket":   svc.cfg.BucketName,
	}).Info("Funnel archive ready")
	return nil
}

func NewArchiveService(client ObjectWriter, bucket string, funnelSvc *FunnelService, loc *time.Location) *ArchiveService {
	if loc == nil {
		loc = time.UTC
	}
	return &ArchiveService{
		cfg:       archiveConfig{Enabled: client != nil, BucketName: bucket},
		client:    client,
		funnelSvc: funnelSvc,
		location:  loc,
	}
}

func (svc *ArchiveService) Enabled() bool {
	return svc != nil && svc.cfg.Enabled && svc.client != nil
}

func (svc *ArchiveService) ensureBucket(ctx context.Context) error {
	exists, err := svc.client.BucketExists(ctx, svc.cfg.BucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}
	if exists {
		return nil
	}

	if err := svc.client.MakeBucket(ctx, svc.cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %v", err)
	}
	log.WithField("bucket", svc.cfg.BucketName).Info("Created MinIO bucket")
	return nil
}

func archiveObjectName(day string) string {
	return archivePrefix + day + ".jsonl"
}

// ExportDay uploads the funnel events of day's calendar date, read in the app timezone. Events
// come from the database when it is enabled, otherwise from the retained in-memory log.
func (svc *ArchiveService) ExportDay(ctx context.Context, day time.Time) (*dto.ArchiveExportResponse, error) {
	if !svc.Enabled() {
		return nil, shared.NewServiceUnavailableError(nil, "Funnel archive disabled")
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, svc.location)
	end := start.AddDate(0, 0, 1)

	events, err := svc.eventsBetween(start, end)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, e := range events {
		line, err := shared.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("failed to encode funnel event: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	object := archiveObjectName(shared.DayKey(start, svc.location))
	size := int64(buf.Len())
	if _, err := svc.client.PutObject(ctx, svc.cfg.BucketName, object, &buf, size, minio.PutObjectOptions{
		ContentType: archiveContentType,
	}); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", object, err)
	}

	log.WithFields(log.Fields{
		"object": object,
		"events": len(events),
	}).Info("Funnel events exported")

	return &dto.ArchiveExportResponse{Object: object, Events: len(events), Size: size}, nil
}

func (svc *ArchiveService) eventsBetween(from, to time.Time) ([]model.FunnelEvent, error) {
	if !svc.dbSvc.Enabled() {
		return svc.funnelSvc.EventsBetween(from, to), nil
	}

	records, err := svc.dbSvc.FunnelRepository().ListEventsBetween(from, to)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	events := make([]model.FunnelEvent, 0, len(records))
	for _, r := range records {
		events = append(events, model.FunnelEvent{
			Name:      model.FunnelEventName(r.Name),
			Payload:   r.Payload,
			Timestamp: r.Timestamp,
		})
	}
	return events, nil
}
