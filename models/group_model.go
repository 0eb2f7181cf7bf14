package models

import "time"

type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CreatedBy   uint   `gorm:"not null" json:"created_by"`
	InviteCode  string `gorm:"size:10;unique" json:"invite_code"`

	Messages []GroupMessage `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupUser is the membership row joining users to groups. The creator is
// attached with the admin role.
type GroupUser struct {
	GroupID  uint      `gorm:"primaryKey" json:"group_id"`
	UserID   uint      `gorm:"primaryKey" json:"user_id"`
	Role     string    `gorm:"size:20;not null;default:'member'" json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
