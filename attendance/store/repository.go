package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/model"
	"gymdesk.io/backoffice/utils"
)

// Repository reads rosters and access logs of one studio schema.
// The handle handed out by core.DatabaseManager is pinned to a single
// connection, so queries are serialised.
type Repository struct {
	mu sync.Mutex
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FetchRoster loads users and staff and merges them with BuildRoster.
func (r *Repository) FetchRoster(ctx context.Context, scope core.RosterScope) ([]core.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []model.User
	if scope.Population != core.PopulationStaff {
		if err := r.db.WithContext(ctx).Order("name").Find(&users).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch users: %w", err)
		}
	}

	var staffs []model.Staff
	if err := r.db.WithContext(ctx).Order("username").Find(&staffs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch staffs: %w", err)
	}

	return BuildRoster(users, staffs, scope), nil
}

func (r *Repository) FetchEvents(ctx context.Context, from, to time.Time) ([]core.AccessEvent, error) {
	logs, err := r.FetchAccessLogs(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return utils.Map(logs, LogToEvent), nil
}

func (r *Repository) FetchAccessLogs(ctx context.Context, from, to time.Time, userIDs ...string) ([]model.AccessLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var logs []model.AccessLog
	query := r.db.WithContext(ctx).Where("timestamp BETWEEN ? AND ?", from, to)
	if len(userIDs) > 0 {
		query = query.Where("user_id IN ?", userIDs)
	}
	if err := query.Order("timestamp").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch access logs: %w", err)
	}
	return logs, nil
}

// SaveAccessLogs upserts by id, so re-importing a file is harmless.
func (r *Repository) SaveAccessLogs(ctx context.Context, logs []model.AccessLog) error {
	if len(logs) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(&logs, 100).Error; err != nil {
		return fmt.Errorf("failed to save access logs: %w", err)
	}
	return nil
}

func (r *Repository) SaveUsers(ctx context.Context, users []model.User) error {
	if len(users) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.WithContext(ctx).Save(&users).Error; err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func (r *Repository) SaveStaffs(ctx context.Context, staffs []model.Staff) error {
	if len(staffs) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.WithContext(ctx).Save(&staffs).Error; err != nil {
		return fmt.Errorf("failed to save staffs: %w", err)
	}
	return nil
}

// Migrate creates the studio tables that do not exist yet.
func Migrate(db *gorm.DB) error {
	for _, m := range model.All() {
		if db.Migrator().HasTable(m) {
			continue
		}
		if err := db.Migrator().CreateTable(m); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
	}
	return nil
}
