package models

import "time"

// Entry represents a single journal record. AuthorID is the authoritative
// ownership link; Title is unique only among entries of the same author,
// never globally.
type Entry struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CreatedAt time.Time `json:"CreatedAt"`
	Title     string    `json:"Title" gorm:"type:varchar(100);index:idx_entries_author_title" validate:"required,alphanum,min=5"`
	Content   string    `json:"Content" gorm:"type:varchar(500)" validate:"required,min=8,max=500"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index:idx_entries_author_title"`
}
