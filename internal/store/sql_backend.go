package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"chatvault/internal/domain"
)

// chatRoomRow is the GORM model of one stored record.
type chatRoomRow struct {
	StorageKey string `gorm:"primaryKey;size:160"`
	Payload    []byte `gorm:"not null"`
	UpdatedAt  time.Time
}

func (chatRoomRow) TableName() string { return "chat_rooms" }

// SQLBackend keeps records in the chat_rooms table of a GORM database.
type SQLBackend struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the SQLite database at path.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// NewSQLBackend migrates the chat_rooms table and returns a backend over db.
func NewSQLBackend(db *gorm.DB) (*SQLBackend, error) {
	if err := db.AutoMigrate(&chatRoomRow{}); err != nil {
		return nil, err
	}
	return &SQLBackend{db: db}, nil
}

func (s *SQLBackend) Load(ctx context.Context, key domain.StorageKey) ([]byte, bool, error) {
	var row chatRoomRow
	err := s.db.WithContext(ctx).First(&row, "storage_key = ?", string(key)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.Payload, true, nil
}

func (s *SQLBackend) Save(ctx context.Context, key domain.StorageKey, data []byte) error {
	row := chatRoomRow{StorageKey: string(key), Payload: data, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *SQLBackend) Remove(ctx context.Context, key domain.StorageKey) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&chatRoomRow{}, "storage_key = ?", string(key))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Close closes the underlying connection pool.
func (s *SQLBackend) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ domain.RecordBackend = (*SQLBackend)(nil)
