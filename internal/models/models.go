package models

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// BaseModel provides the document id (ULID) shared by all collections.
// It is serialized as "_id" so clients see the usual document shape.
type BaseModel struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Blog is a document of the "blogs" collection
type Blog struct {
	BaseModel
	Title            string    `json:"title"`
	Image            string    `json:"image"`
	Category         string    `json:"category"`
	ShortDescription string    `json:"shortDescription"`
	LongDescription  string    `json:"longDescription" gorm:"type:text"`
	Email            string    `json:"email,omitempty" gorm:"index"` // Author, taken from the session
	Timestamp        time.Time `json:"timestamp" gorm:"index"`
	TitleFolded      string    `json:"-" gorm:"index"` // Case-folded title for search
}

// BeforeSave keeps the folded title in step with the title
func (b *Blog) BeforeSave(tx *gorm.DB) error {
	b.TitleFolded = FoldTitle(b.Title)
	return nil
}

// FoldTitle applies Unicode case folding so searches match regardless of
// case in any script. A Caser is stateful, hence one per call.
func FoldTitle(s string) string {
	return cases.Fold().String(s)
}

// WishlistItem is a document of the "wishlist" collection. The entry is
// free-form; only the owner email is lifted into its own column for filtering.
type WishlistItem struct {
	BaseModel
	Email     string         `json:"email" gorm:"index;not null"`
	Entry     map[string]any `json:"-" gorm:"serializer:json;type:text"`
	Timestamp time.Time      `json:"timestamp" gorm:"index"`
}

// TableName keeps the collection name used by existing clients
func (WishlistItem) TableName() string {
	return "wishlist"
}

// MarshalJSON flattens the free-form entry into the document
func (w WishlistItem) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(w.Entry)+3)
	for k, v := range w.Entry {
		doc[k] = v
	}
	doc["_id"] = w.ID
	doc["email"] = w.Email
	doc["timestamp"] = w.Timestamp
	return json.Marshal(doc)
}

// RevokedToken records a logged out token id until the token would have
// expired on its own.
type RevokedToken struct {
	TokenID   string    `gorm:"primaryKey;type:varchar(26)"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// InsertResult mirrors the acknowledgement returned for a single insert
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult mirrors the acknowledgement returned for a single update
type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

// DeleteResult mirrors the acknowledgement returned for a single delete
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Blog{},
		&WishlistItem{},
		&RevokedToken{},
	); err != nil {
		return err
	}
	return backfillTitleFolded(db)
}

// backfillTitleFolded fills the folded title of blogs stored before the
// column existed
func backfillTitleFolded(db *gorm.DB) error {
	var blogs []Blog
	return db.Where("(title_folded IS NULL OR title_folded = '') AND title <> ''").
		FindInBatches(&blogs, 100, func(_ *gorm.DB, _ int) error {
			for _, b := range blogs {
				if err := db.Model(&Blog{}).Where("id = ?", b.ID).
					UpdateColumn("title_folded", FoldTitle(b.Title)).Error; err != nil {
					return err
				}
			}
			return nil
		}).Error
}
