package models

import "time"

// Post is a published gallery entry. The ID and CreatedAt fields are
// assigned by the database on insert; a post is never updated or deleted
// after creation.
type Post struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null"`
	Prompt    string    `json:"prompt" gorm:"not null"`
	Photo     string    `json:"photo" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}
