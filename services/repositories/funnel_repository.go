package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lac-hong-legacy/ven_growth/model"
)

// FunnelRepository archives funnel events.
type FunnelRepository struct {
	BaseRepository
}

func NewFunnelRepository(db *gorm.DB) *FunnelRepository {
	return &FunnelRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *FunnelRepository) CreateEvent(event model.FunnelEvent) (*model.FunnelEventRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	record := &model.FunnelEventRecord{
		ID:        id.String(),
		Name:      string(event.Name),
		Payload:   event.Payload,
		Timestamp: event.Timestamp,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// ListEventsBetween returns events with from <= timestamp < to, oldest first.
func (r *FunnelRepository) ListEventsBetween(from, to time.Time) ([]model.FunnelEventRecord, error) {
	var records []model.FunnelEventRecord
	err := r.db.
		Where("timestamp >= ? AND timestamp < ?", from, to).
		Order("timestamp ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

type funnelCount struct {
	Name  string
	Count int64
}

func (r *FunnelRepository) CountByName() (map[string]int64, error) {
	var rows []funnelCount
	err := r.db.Model(&model.FunnelEventRecord{}).
		Select("name, COUNT(*) AS count").
		Group("name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Name] = row.Count
	}
	return counts, nil
}
