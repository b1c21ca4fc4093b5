package models

import "time"

// User represents a registered account. Password always holds a bcrypt hash
// at rest; the raw password never leaves the service layer.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName string    `json:"FirstName" gorm:"type:varchar(100)" validate:"required"`
	LastName  string    `json:"LastName" gorm:"type:varchar(100)" validate:"required"`
	UserName  string    `json:"UserName" gorm:"uniqueIndex;type:varchar(100)" validate:"required,alphanum,min=5"`
	Email     string    `json:"Email" gorm:"type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // Never serialized
	CreatedAt time.Time `json:"CreatedAt"`

	// Entries lists the ids of this user's entries. It is a projection
	// derived from Entry.AuthorID on read and is never persisted.
	Entries []string `json:"Entries" gorm:"-"`
}
