package repositories

import "journal/internal/models"

// EntryRepository defines the interface for journal entry data access.
// Entries are always addressed through their author: the AuthorID field is
// the single source of truth for ownership.
type EntryRepository interface {
	Create(entry *models.Entry) error
	GetByAuthor(authorID string) ([]models.Entry, error)
	GetByAuthorAndTitle(authorID, title string) (*models.Entry, error)
	Update(entry *models.Entry) error
	Delete(id string) error
	DeleteByAuthor(authorID string) error
}
