package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"medieaze-storefront/internal/events"
	"medieaze-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known keys of the local store.
const (
	KeyCart            = "medieaze_cart"
	KeyRegisteredUsers = "registeredUsers"
	KeyCurrentUser     = "currentUser"
	KeyGuestOrders     = "guestOrders"
)

// LocalStore is the single serialization boundary between the in-memory
// stores and persistence: JSON blobs under fixed keys, nothing else.
type LocalStore interface {
	// Get decodes the value under key into out. A missing key or a corrupt
	// blob both return found=false; corrupt data is logged, never fatal.
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

type localStoreImpl struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewLocalStore(db *gorm.DB, bus *events.Bus) LocalStore {
	return &localStoreImpl{
		db:  db,
		bus: bus,
	}
}

func (s *localStoreImpl) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	var record model.StorageRecord
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read storage record %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(record.Value), out); err != nil {
		// corrupt blob, treat as no data
		log.Printf("storage: discarding corrupt value under %q: %v", key, err)
		return false, nil
	}

	return true, nil
}

func (s *localStoreImpl) Set(ctx context.Context, key string, value interface{}) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}

	record := model.StorageRecord{
		Key:       key,
		Value:     string(blob),
		UpdatedAt: time.Now(),
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      record.Value,
			"updated_at": record.UpdatedAt,
		}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("write storage record %q: %w", key, err)
	}

	s.bus.Publish(events.StorageChange{Key: key, NewValue: record.Value})
	return nil
}

func (s *localStoreImpl) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.StorageRecord{}).Error
	if err != nil {
		return fmt.Errorf("delete storage record %q: %w", key, err)
	}

	s.bus.Publish(events.StorageChange{Key: key})
	return nil
}
