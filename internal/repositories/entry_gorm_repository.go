package repositories

import (
	"errors"
	"fmt"

	"journal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMEntryRepository is a GORM implementation of EntryRepository.
type GORMEntryRepository struct {
	db *gorm.DB
}

// NewGORMEntryRepository creates a new instance of GORMEntryRepository.
func NewGORMEntryRepository(db *gorm.DB) *GORMEntryRepository {
	return &GORMEntryRepository{
		db: db,
	}
}

// Create creates a new entry in the database.
func (r *GORMEntryRepository) Create(entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// GetByAuthor retrieves all entries owned by the given author, oldest first.
func (r *GORMEntryRepository) GetByAuthor(authorID string) ([]models.Entry, error) {
	var entries []models.Entry
	if err := r.db.Where("author_id = ?", authorID).Order("created_at").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get entries for author %s: %w", authorID, err)
	}
	return entries, nil
}

// GetByAuthorAndTitle retrieves a single entry by its title within one
// author's entries. Titles are only unique per author, so both keys are
// required.
func (r *GORMEntryRepository) GetByAuthorAndTitle(authorID, title string) (*models.Entry, error) {
	var entry models.Entry
	if err := r.db.First(&entry, "author_id = ? AND title = ?", authorID, title).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("entry %q for author %s: %w", title, authorID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry %q for author %s: %w", title, authorID, err)
	}
	return &entry, nil
}

// Update updates an existing entry in the database.
func (r *GORMEntryRepository) Update(entry *models.Entry) error {
	res := r.db.Save(entry)
	if res.Error != nil {
		return fmt.Errorf("failed to update entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("entry with ID %s for update: %w", entry.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes an entry by its ID from the database.
func (r *GORMEntryRepository) Delete(id string) error {
	res := r.db.Delete(&models.Entry{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("entry with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByAuthor deletes every entry owned by the given author. Used when a
// user account is removed so no orphaned entries remain.
func (r *GORMEntryRepository) DeleteByAuthor(authorID string) error {
	if err := r.db.Delete(&models.Entry{}, "author_id = ?", authorID).Error; err != nil {
		return fmt.Errorf("failed to delete entries for author %s: %w", authorID, err)
	}
	return nil
}
