package models

import "time"

type GroupMessage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	GroupID  uint   `gorm:"not null;index" json:"group_id"`
	SenderID uint   `gorm:"not null;index" json:"sender_id"`
	Message  string `gorm:"type:text;not null" json:"message"`

	Sender User  `gorm:"foreignKey:SenderID" json:"-"`
	Group  Group `gorm:"foreignKey:GroupID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
