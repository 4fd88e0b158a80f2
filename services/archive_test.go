package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

type fakeObjectWriter struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeObjectWriter() *fakeObjectWriter {
	return &fakeObjectWriter{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjectWriter) BucketExists(context.Context, string) (bool, error) {
	return true, nil
}

func (f *fakeObjectWriter) MakeBucket(context.Context, string, minio.MakeBucketOptions) error {
	return nil
}

func (f *fakeObjectWriter) PutObject(_ context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucket+"/"+object] = buf.Bytes()
	f.types[bucket+"/"+object] = opts.ContentType
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: size}, nil
}

func TestExportDay(t *testing.T) {
	clock := shared.NewManualClock(testStart)
	funnel := NewFunnelService(clock, 10)
	ctx := context.Background()

	_, _ = funnel.TrackFunnelEvent(ctx, model.FunnelLinkCreated, map[string]any{"code": "A"})
	clock.Advance(time.Hour)
	_, _ = funnel.TrackFunnelEvent(ctx, model.FunnelConversion, nil)
	clock.Advance(24 * time.Hour)
	_, _ = funnel.TrackFunnelEvent(ctx, model.FunnelSignup, nil)

	writer := newFakeObjectWriter()
	archive := NewArchiveService(writer, "growth", funnel, time.UTC)

	resp, err := archive.ExportDay(ctx, testStart)
	require.NoError(t, err)
	assert.Equal(t, "funnel/2024-05-01.jsonl", resp.Object)
	assert.Equal(t, 2, resp.Events)

	body := writer.objects["growth/funnel/2024-05-01.jsonl"]
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"link_created"`)
	assert.Contains(t, lines[1], `"conversion"`)
	assert.Equal(t, int64(len(body)), resp.Size)
	assert.Equal(t, "application/x-ndjson", writer.types["growth/funnel/2024-05-01.jsonl"])
}

func TestExportDay_EmptyDay(t *testing.T) {
	writer := newFakeObjectWriter()
	archive := NewArchiveService(writer, "growth", NewFunnelService(shared.NewManualClock(testStart), 10), time.UTC)

	resp, err := archive.ExportDay(context.Background(), testStart.AddDate(0, 0, -3))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Events)
	assert.Equal(t, "funnel/2024-04-28.jsonl", resp.Object)
}

func TestExportDay_Disabled(t *testing.T) {
	archive := NewArchiveService(nil, "growth", NewFunnelService(nil, 10), nil)
	assert.False(t, archive.Enabled())

	_, err := archive.ExportDay(context.Background(), testStart)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.StatusCode)
}

func TestExportDay_UploadError(t *testing.T) {
	writer := newFakeObjectWriter()
	writer.putErr = errors.New("bucket gone")
	archive := NewArchiveService(writer, "growth", NewFunnelService(shared.NewManualClock(testStart), 10), time.UTC)

	_, err := archive.ExportDay(context.Background(), testStart)
	assert.ErrorContains(t, err, "bucket gone")
}
