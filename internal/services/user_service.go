package services

import (
	"errors"
	"fmt"

	"journal/internal/models"
	"journal/internal/repositories"
)

// UserService handles business logic for user accounts: registration,
// lookups and self-only credential updates.
type UserService struct {
	userRepo  repositories.UserRepository
	entryRepo repositories.EntryRepository
	auth      *AuthService
	events    EventPublisher
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, entryRepo repositories.EntryRepository, auth *AuthService, events EventPublisher) *UserService {
	return &UserService{
		userRepo:  userRepo,
		entryRepo: entryRepo,
		auth:      auth,
		events:    events,
	}
}

// UserUpdate carries the optional new field values for a credential update.
// Empty fields are left unchanged.
type UserUpdate struct {
	FirstName string
	LastName  string
	UserName  string
	Password  string
	Email     string
}

// Register creates a new account. The username check and the create are two
// separate store operations; concurrent registrations of the same username
// can both pass the check (see the unique index on UserName as the backstop).
func (s *UserService) Register(user *models.User, password string) (*models.User, error) {
	if _, err := s.userRepo.GetByUserName(user.UserName); err == nil {
		return nil, fmt.Errorf("username %q %w", user.UserName, ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	publishEvent(s.events, "user.registered", map[string]interface{}{
		"userID":   user.ID,
		"username": user.UserName,
	})

	user.Entries = []string{}
	return user, nil
}

// GetAll retrieves all users with their derived entry id lists.
func (s *UserService) GetAll() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if err := s.attachEntryIDs(&users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// GetByUserName retrieves a single user by username.
func (s *UserService) GetByUserName(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUserName(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("user %q %w", username, ErrNotFound)
		}
		return nil, err
	}
	if err := s.attachEntryIDs(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update modifies the acting user's own account. Changing the username fails
// with ErrConflict when the new name belongs to a different existing user.
func (s *UserService) Update(actingUser *models.User, targetUserName string, update UserUpdate) (*models.User, error) {
	if actingUser.UserName != targetUserName {
		return nil, fmt.Errorf("%w: users may only update their own account", ErrPermissionDenied)
	}

	user := *actingUser
	if update.UserName != "" && update.UserName != user.UserName {
		existing, err := s.userRepo.GetByUserName(update.UserName)
		if err == nil && existing.ID != user.ID {
			return nil, fmt.Errorf("username %q %w", update.UserName, ErrConflict)
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		user.UserName = update.UserName
	}
	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Password != "" {
		hashed, err := s.auth.HashPassword(update.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(&user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := s.attachEntryIDs(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the acting user's own account together with all of their
// entries.
func (s *UserService) Delete(actingUser *models.User, targetUserName string) error {
	if actingUser.UserName != targetUserName {
		return fmt.Errorf("%w: users may only delete their own account", ErrPermissionDenied)
	}

	if err := s.entryRepo.DeleteByAuthor(actingUser.ID); err != nil {
		return fmt.Errorf("failed to delete entries of user %s: %w", actingUser.UserName, err)
	}
	if err := s.userRepo.Delete(actingUser.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	publishEvent(s.events, "user.deleted", map[string]interface{}{
		"userID":   actingUser.ID,
		"username": actingUser.UserName,
	})
	return nil
}

// attachEntryIDs fills the derived Entries projection from the authoritative
// Entry.AuthorID linkage.
func (s *UserService) attachEntryIDs(user *models.User) error {
	entries, err := s.entryRepo.GetByAuthor(user.ID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	user.Entries = ids
	return nil
}
