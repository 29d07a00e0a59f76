package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"localaichat/internal/domain"
	"localaichat/internal/ports/output"
)

// Compile-time check to ensure SessionRepository implements the output port
var _ output.SessionRepository = (*SessionRepository)(nil)

// SessionRepository struct - Secondary/Driven adapter for PostgreSQL
type SessionRepository struct {
	dbGorm *gorm.DB
}

// NewSessionRepository func - Creates new PostgreSQL repository and migrates its tables
func NewSessionRepository(dbGorm *gorm.DB) (*SessionRepository, error) {
	logrus.Info("Migrate database ...")
	if err := MigrateDatabase(dbGorm); err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return &SessionRepository{
		dbGorm: dbGorm,
	}, nil
}

// GetSession func - Loads a session with its messages in order
func (p *SessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	var record SessionRecord
	err := p.dbGorm.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return fromRecord(&record)
}

// UpdateSession func - Upserts a session and replaces its messages
func (p *SessionRepository) UpdateSession(ctx context.Context, session *domain.ChatSession) error {
	record, err := toRecord(session)
	if err != nil {
		return err
	}

	err = p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Messages").Save(record).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", record.ID).Delete(&MessageRecord{}).Error; err != nil {
			return err
		}
		if len(record.Messages) == 0 {
			return nil
		}
		return tx.Create(&record.Messages).Error
	})
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// DeleteSession func - Removes a session and its messages
func (p *SessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	err := p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&MessageRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&SessionRecord{}, "id = ?", id).Error
	})
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// ListSessions func - Returns all session ids, most recently used first
func (p *SessionRepository) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.dbGorm.WithContext(ctx).
		Model(&SessionRecord{}).
		Order("last_access_time DESC").
		Pluck("id", &ids).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return ids, nil
}
