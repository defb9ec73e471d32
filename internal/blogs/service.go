package blogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/blogwave/blogwave/internal/models"
)

// SortOrder selects the title ordering of search results
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps the "sort" query value; anything but "asc" is descending
func ParseSortOrder(value string) SortOrder {
	if value == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

// BlogFields are the client-editable fields of a blog document
type BlogFields struct {
	Title            string `json:"title"`
	Image            string `json:"image"`
	Category         string `json:"category"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
}

// Service performs the blog collection's store operations. Each method maps
// to exactly one query.
type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a new blogs service
func NewService(db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// List returns every blog, newest first
func (s *Service) List(ctx context.Context) ([]models.Blog, error) {
	blogs := []models.Blog{}
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, nil
}

// Search returns blogs whose title contains term (case-insensitive), ordered
// by title. An empty term matches everything.
func (s *Service) Search(ctx context.Context, term string, order SortOrder) ([]models.Blog, error) {
	direction := "DESC"
	if order == SortAsc {
		direction = "ASC"
	}

	pattern := "%" + escapeLike(models.FoldTitle(term)) + "%"

	blogs := []models.Blog{}
	err := s.db.WithContext(ctx).
		Where(`title_folded LIKE ? ESCAPE '\'`, pattern).
		Order("title " + direction).
		Find(&blogs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search blogs: %w", err)
	}
	return blogs, nil
}

// Get returns a single blog, or nil when no document has that id
func (s *Service) Get(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.WithContext(ctx).First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blog %s: %w", id, err)
	}
	return &blog, nil
}

// Create inserts a blog stamped with the current time and its author
func (s *Service) Create(ctx context.Context, fields BlogFields, author string) (*models.InsertResult, error) {
	blog := models.Blog{
		Title:            fields.Title,
		Image:            fields.Image,
		Category:         fields.Category,
		ShortDescription: fields.ShortDescription,
		LongDescription:  fields.LongDescription,
		Email:            author,
		Timestamp:        s.now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&blog).Error; err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	s.logger.Info().Str("blog_id", blog.ID).Str("email", author).Msg("Blog created")

	return &models.InsertResult{Acknowledged: true, InsertedID: blog.ID}, nil
}

// Update overwrites all editable fields of the blog with the given id
func (s *Service) Update(ctx context.Context, id string, fields BlogFields) (*models.UpdateResult, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", id).
		Select("title", "title_folded", "image", "category", "short_description", "long_description").
		Updates(models.Blog{
			Title:            fields.Title,
			TitleFolded:      models.FoldTitle(fields.Title),
			Image:            fields.Image,
			Category:         fields.Category,
			ShortDescription: fields.ShortDescription,
			LongDescription:  fields.LongDescription,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update blog %s: %w", id, result.Error)
	}

	// SQLite reports rows matched by the filter, so both counts coincide
	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  result.RowsAffected,
		ModifiedCount: result.RowsAffected,
	}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
