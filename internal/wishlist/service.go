package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/blogwave/blogwave/internal/models"
)

// Service performs the wishlist collection's store operations
type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the wishlist entries owned by email, most recent first
func (s *Service) List(ctx context.Context, email string) ([]models.WishlistItem, error) {
	items := []models.WishlistItem{}
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("timestamp DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return items, nil
}

// Get returns a single wishlist entry, or nil when no document has that id
func (s *Service) Get(ctx context.Context, id string) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wishlist entry %s: %w", id, err)
	}
	return &item, nil
}

// Add stores a free-form entry. The "email" field, if it is a string, becomes
// the owner; "_id" and "timestamp" are assigned by the store.
func (s *Service) Add(ctx context.Context, entry map[string]any) (*models.InsertResult, error) {
	email, _ := entry["email"].(string)

	fields := make(map[string]any, len(entry))
	for k, v := range entry {
		switch k {
		case "_id", "email", "timestamp":
			continue
		}
		fields[k] = v
	}

	item := models.WishlistItem{
		Email:     email,
		Entry:     fields,
		Timestamp: s.now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add wishlist entry: %w", err)
	}

	s.logger.Info().Str("wishlist_id", item.ID).Str("email", email).Msg("Wishlist entry added")

	return &models.InsertResult{Acknowledged: true, InsertedID: item.ID}, nil
}

// Remove deletes the entry with the given id if it belongs to email
func (s *Service) Remove(ctx context.Context, id, email string) (*models.DeleteResult, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND email = ?", id, email).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove wishlist entry %s: %w", id, result.Error)
	}

	return &models.DeleteResult{Acknowledged: true, DeletedCount: result.RowsAffected}, nil
}
