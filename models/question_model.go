package models

const (
	QuestionTypeMCQ  = "mcq"
	QuestionTypeText = "text"
)

type Question struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ExamID        uint   `gorm:"not null;index" json:"exam_id"`
	QuestionText  string `gorm:"type:text;not null" json:"question_text"`
	Type          string `gorm:"size:20;not null;default:'mcq'" json:"type"`
	CorrectAnswer string `gorm:"type:text;not null" json:"correct_answer"`

	Options []Option `json:"options,omitempty"`
}
