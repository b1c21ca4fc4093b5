package services

import (
	"errors"
	"fmt"
	"time"

	"journal/internal/models"
	"journal/internal/repositories"

	"github.com/google/uuid"
)

// EntryService is the ownership-scoped core: every operation takes the
// acting user resolved from a verified token, and entries are only ever
// addressed through that user's AuthorID. Titles are unique per user, not
// globally.
type EntryService struct {
	entryRepo repositories.EntryRepository
	events    EventPublisher
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo repositories.EntryRepository, events EventPublisher) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
		events:    events,
	}
}

// ListOwn retrieves the acting user's entries in creation order.
func (s *EntryService) ListOwn(actingUser *models.User) ([]models.Entry, error) {
	return s.entryRepo.GetByAuthor(actingUser.ID)
}

// Create persists a new entry owned by the acting user. The title conflict
// check and the create are separate store operations; two concurrent creates
// with the same title can both pass the check.
func (s *EntryService) Create(actingUser *models.User, title, content string) (*models.Entry, error) {
	if _, err := s.entryRepo.GetByAuthorAndTitle(actingUser.ID, title); err == nil {
		return nil, fmt.Errorf("entry titled %q %w", title, ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	entry := &models.Entry{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Title:     title,
		Content:   content,
		AuthorID:  actingUser.ID,
	}
	if err := s.entryRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	publishEvent(s.events, "entry.created", map[string]interface{}{
		"entryID":  entry.ID,
		"authorID": entry.AuthorID,
		"title":    entry.Title,
	})
	return entry, nil
}

// Update replaces the title and content of the entry currently titled
// currentTitle among the acting user's entries. Another user's entry with
// the same title is invisible here and yields ErrNotFound.
func (s *EntryService) Update(actingUser *models.User, currentTitle, newTitle, newContent string) (*models.Entry, error) {
	entry, err := s.entryRepo.GetByAuthorAndTitle(actingUser.ID, currentTitle)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("entry titled %q %w", currentTitle, ErrNotFound)
		}
		return nil, err
	}

	if newTitle != currentTitle {
		other, err := s.entryRepo.GetByAuthorAndTitle(actingUser.ID, newTitle)
		if err == nil && other.ID != entry.ID {
			return nil, fmt.Errorf("entry titled %q %w", newTitle, ErrConflict)
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	entry.Title = newTitle
	entry.Content = newContent
	if err := s.entryRepo.Update(entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	publishEvent(s.events, "entry.updated", map[string]interface{}{
		"entryID":  entry.ID,
		"authorID": entry.AuthorID,
		"title":    entry.Title,
	})
	return entry, nil
}

// Delete removes the entry with the given title from the acting user's
// entries.
func (s *EntryService) Delete(actingUser *models.User, title string) error {
	entry, err := s.entryRepo.GetByAuthorAndTitle(actingUser.ID, title)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("entry titled %q %w", title, ErrNotFound)
		}
		return err
	}

	if err := s.entryRepo.Delete(entry.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	publishEvent(s.events, "entry.deleted", map[string]interface{}{
		"entryID":  entry.ID,
		"authorID": entry.AuthorID,
		"title":    entry.Title,
	})
	return nil
}
