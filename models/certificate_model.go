package models

import "time"

type Certificate struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	ExamID         uint      `gorm:"not null" json:"exam_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	CompletionDate time.Time `json:"completion_date"`
	CertificateURL string    `gorm:"size:512" json:"certificate_url"`

	CreatedAt time.Time `json:"created_at"`
}
