package model

import "time"

type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Author    string    `gorm:"size:36;not null;index" json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
