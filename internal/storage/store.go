package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps a gorm DB instance and records sessions, placements and moves.
// Every method is a no-op on a nil *Store so callers never need to check whether storage
// is configured.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store helper from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateSession inserts a session row; an existing id is left untouched.
func (s *Store) CreateSession(ctx context.Context, id uuid.UUID, kind string, level int, lastSeen time.Time) error {
	if s == nil {
		return nil
	}
	sess := Session{
		ID:       id,
		Kind:     kind,
		Level:    level,
		Active:   true,
		LastSeen: lastSeen,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&sess).Error
}

// SetLevel records the level a queens session moved to.
func (s *Store) SetLevel(ctx context.Context, id uuid.UUID, level int) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).
		Updates(map[string]any{"level": level, "status": ""}).Error
}

// CompleteSession marks a session finished with the given status.
func (s *Store) CompleteSession(ctx context.Context, id uuid.UUID, status string, when time.Time) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "completed_at": when}).Error
}

// DeactivateSession marks a session as no longer live.
func (s *Store) DeactivateSession(ctx context.Context, id uuid.UUID, lastSeen time.Time) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).
		Updates(map[string]any{"active": false, "last_seen": lastSeen}).Error
}

// RecordPlacement inserts a queen placement attempt.
func (s *Store) RecordPlacement(ctx context.Context, sessionID uuid.UUID, level, cell int, outcome string) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(&Placement{
		SessionID: sessionID,
		Level:     level,
		Cell:      cell,
		Outcome:   outcome,
	}).Error
}

// RecordMove inserts an executed move.
func (s *Store) RecordMove(ctx context.Context, sessionID uuid.UUID, number int, m Move) error {
	if s == nil {
		return nil
	}
	m.ID = uuid.Nil
	m.SessionID = sessionID
	m.Number = number
	return s.db.WithContext(ctx).Create(&m).Error
}

// UndoMove flags the move with the given number as undone.
func (s *Store) UndoMove(ctx context.Context, sessionID uuid.UUID, number int) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Move{}).
		Where("session_id = ? AND number = ? AND undone = ?", sessionID, number, false).
		Update("undone", true).Error
}

// ResetMoves flags every live move of a session as undone, used when the board is reset.
func (s *Store) ResetMoves(ctx context.Context, sessionID uuid.UUID) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Move{}).
		Where("session_id = ? AND undone = ?", sessionID, false).
		Update("undone", true).Error
}

// Stats represents aggregate counts for sessions.
type Stats struct {
	Started   int64 `json:"started"`
	Completed int64 `json:"completed"`
	Active    int64 `json:"active"`
	Moves     int64 `json:"moves"`
}

// FetchStats aggregates counts for display on the home page.
func (s *Store) FetchStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if s == nil {
		return stats, nil
	}
	db := s.db.WithContext(ctx)
	if err := db.Model(&Session{}).Count(&stats.Started).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&Session{}).Where("active = ?", true).Count(&stats.Active).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&Session{}).Where("completed_at IS NOT NULL").Count(&stats.Completed).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&Move{}).Where("undone = ?", false).Count(&stats.Moves).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
