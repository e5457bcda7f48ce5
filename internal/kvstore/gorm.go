package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Entry struct {
	Key       string    `gorm:"column:entry_key;type:varchar(200);primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// GORM keeps entries in a kv_entries table. Pair with connection.ConnectGORMWithRetry.
type GORM struct {
	db *gorm.DB
}

func NewGORM(db *gorm.DB) *GORM {
	return &GORM{db: db}
}

// Migrate creates the kv_entries table when missing.
func (g *GORM) Migrate(ctx context.Context) error {
	return g.db.WithContext(ctx).AutoMigrate(&Entry{})
}

func (g *GORM) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	var e Entry
	err := g.db.WithContext(ctx).Where("entry_key = ?", key).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kvstore gorm: get %s: %w", key, err)
	}
	return e.Value, true, nil
}

func (g *GORM) Set(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
	if err != nil {
		return fmt.Errorf("kvstore gorm: set %s: %w", key, err)
	}
	return nil
}

func (g *GORM) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := g.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("kvstore gorm: delete %s: %w", key, err)
	}
	return nil
}
