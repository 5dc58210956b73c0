package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/ports"
)

var _ ports.Repository = (*Repository)(nil)

// singletonID is the primary key of the only settings row.
const singletonID = 1

// Repository persists the storefront schedule in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed schedule repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ScheduleRecord maps the schedule to the storefront_settings table.
type ScheduleRecord struct {
	ID            int                  `gorm:"primaryKey;column:id"`
	IsOpen        bool                 `gorm:"column:is_open"`
	ClosedMessage string               `gorm:"column:closed_message"`
	Days          map[string]dayRecord `gorm:"column:days;serializer:json"`
	UpdatedAt     time.Time            `gorm:"column:updated_at"`
}

type dayRecord struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

func (ScheduleRecord) TableName() string { return "storefront_settings" }

func (r *Repository) Get(ctx context.Context) (domain.Schedule, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Schedule{}, err
	}
	var record ScheduleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", singletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Schedule{}, ports.ErrNotFound
		}
		return domain.Schedule{}, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Save(ctx context.Context, schedule domain.Schedule) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	record := toRecord(schedule)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_open", "closed_message", "days", "updated_at"}),
		}).
		Create(&record).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres schedule repository not configured")
	}
	return nil
}

func toRecord(s domain.Schedule) ScheduleRecord {
	days := make(map[string]dayRecord, len(s.Days))
	for day, entry := range s.Days {
		days[string(day)] = dayRecord{IsOpen: entry.IsOpen, OpenTime: entry.OpenTime, CloseTime: entry.CloseTime}
	}
	return ScheduleRecord{
		ID:            singletonID,
		IsOpen:        s.IsOpen,
		ClosedMessage: s.ClosedMessage,
		Days:          days,
		UpdatedAt:     time.Now(),
	}
}

func (r ScheduleRecord) toDomain() domain.Schedule {
	days := make(map[domain.Weekday]domain.DaySchedule, len(r.Days))
	for day, entry := range r.Days {
		days[domain.Weekday(day)] = domain.DaySchedule{IsOpen: entry.IsOpen, OpenTime: entry.OpenTime, CloseTime: entry.CloseTime}
	}
	return domain.Schedule{IsOpen: r.IsOpen, ClosedMessage: r.ClosedMessage, Days: days}
}
