package repositories

import (
	"fmt"
	"sync"
	"time"

	"journal/internal/models"

	"github.com/google/uuid"
)

// MockEntryRepository is an in-memory implementation of EntryRepository.
// Entries are kept in insertion order so listings match the store-backed
// implementation's creation-time ordering.
type MockEntryRepository struct {
	entries []models.Entry
	mu      sync.RWMutex
}

// NewMockEntryRepository creates a new instance of MockEntryRepository.
func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

// Create adds a new entry.
func (r *MockEntryRepository) Create(entry *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

// GetByAuthor returns all entries owned by the given author, oldest first.
func (r *MockEntryRepository) GetByAuthor(authorID string) ([]models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entryList := make([]models.Entry, 0)
	for _, entry := range r.entries {
		if entry.AuthorID == authorID {
			entryList = append(entryList, entry)
		}
	}
	return entryList, nil
}

// GetByAuthorAndTitle returns a single entry by title within one author's
// entries.
func (r *MockEntryRepository) GetByAuthorAndTitle(authorID, title string) (*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.AuthorID == authorID && entry.Title == title {
			e := entry
			return &e, nil
		}
	}
	return nil, fmt.Errorf("entry %q for author %s: %w", title, authorID, ErrNotFound)
}

// Update modifies an existing entry.
func (r *MockEntryRepository) Update(entry *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == entry.ID {
			r.entries[i] = *entry
			return nil
		}
	}
	return fmt.Errorf("entry with ID %s for update: %w", entry.ID, ErrNotFound)
}

// Delete removes an entry by its ID.
func (r *MockEntryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry with ID %s for deletion: %w", id, ErrNotFound)
}

// DeleteByAuthor removes every entry owned by the given author.
func (r *MockEntryRepository) DeleteByAuthor(authorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.AuthorID != authorID {
			kept = append(kept, entry)
		}
	}
	r.entries = kept
	return nil
}
