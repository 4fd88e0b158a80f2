package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lac-hong-legacy/ven_growth/model"
)

// AnalyticRepository archives agent decisions for observability tooling.
type AnalyticRepository struct {
	BaseRepository
}

func NewAnalyticRepository(db *gorm.DB) *AnalyticRepository {
	return &AnalyticRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *AnalyticRepository) CreateDecision(entry model.DecisionLogEntry) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	return r.db.Create(&model.DecisionRecord{
		ID:        id.String(),
		Agent:     entry.Agent,
		Action:    entry.Action,
		Reason:    entry.Reason,
		Status:    string(entry.Status),
		Timestamp: entry.Timestamp,
		CreatedAt: time.Now(),
	}).Error
}

// ListDecisions returns the newest decisions first.
func (r *AnalyticRepository) ListDecisions(limit int) ([]model.DecisionLogEntry, error) {
	var records []model.DecisionRecord
	query := r.db.Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	entries := make([]model.DecisionLogEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, model.DecisionLogEntry{
			Timestamp: rec.Timestamp,
			Agent:     rec.Agent,
			Action:    rec.Action,
			Reason:    rec.Reason,
			Status:    model.DecisionStatus(rec.Status),
		})
	}
	return entries, nil
}

func (r *AnalyticRepository) CountByStatus(since time.Time) (map[model.DecisionStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&model.DecisionRecord{}).
		Select("status, COUNT(*) AS count").
		Where("timestamp >= ?", since).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.DecisionStatus]int64, len(rows))
	for _, row := range rows {
		counts[model.DecisionStatus(row.Status)] = row.Count
	}
	return counts, nil
}
