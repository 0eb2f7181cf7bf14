package models

import "time"

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Email     string  `gorm:"size:255;not null;unique" json:"email"`
	Password  string  `gorm:"not null" json:"-"`
	AvatarURL *string `gorm:"size:255" json:"avatar_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
