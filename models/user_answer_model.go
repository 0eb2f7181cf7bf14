package models

import "time"

// UserAnswer is an immutable record of one submitted answer. A nil AnswerText
// means the question was presented but left unanswered. Repeated submissions
// of the same exam append new rows; there is no uniqueness constraint.
type UserAnswer struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"not null;index" json:"user_id"`
	QuestionID uint    `gorm:"not null;index" json:"question_id"`
	AnswerText *string `gorm:"type:text" json:"answer_text"`

	CreatedAt time.Time `json:"created_at"`
}
