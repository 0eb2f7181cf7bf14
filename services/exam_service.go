package services

import (
	"strconv"

	"github.com/examchat/backend/models"
	"gorm.io/gorm"
)

// QuestionRepository loads the questions owned by an exam, in a stable order.
type QuestionRepository interface {
	ListByExam(examID uint) ([]models.Question, error)
}

// UserAnswerRepository persists one submitted answer row.
type UserAnswerRepository interface {
	Create(answer *models.UserAnswer) error
}

// AnswerResult is the graded outcome for a single question. YourAnswer is nil
// when the question was not answered.
type AnswerResult struct {
	Question      string  `json:"question"`
	YourAnswer    *string `json:"your_answer"`
	CorrectAnswer string  `json:"correct_answer"`
	IsCorrect     bool    `json:"is_correct"`
}

// SubmissionReport aggregates one grading pass over an exam.
type SubmissionReport struct {
	Results        []AnswerResult `json:"results"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	CorrectAnswers int            `json:"correct_answers"`
}

// ValidationError marks a malformed submission payload. It maps to a client
// error at the HTTP boundary.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// InternalError wraps any failure during load or persistence. The underlying
// message passes through to the caller verbatim.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return e.Err.Error() }

func (e *InternalError) Unwrap() error { return e.Err }

// evaluateAnswer compares a submission against the correct answer exactly:
// case-sensitive, whitespace-sensitive, no normalization. A nil submission is
// never correct.
func evaluateAnswer(correctAnswer string, submitted *string) bool {
	return submitted != nil && *submitted == correctAnswer
}

// processAnswers grades every question in order, persisting one UserAnswer
// row per question as it goes. Unanswered questions are recorded with nil
// answer text. A persistence failure aborts the whole pass.
func processAnswers(answers UserAnswerRepository, questions []models.Question, submitted map[string]string, userID uint) ([]AnswerResult, error) {
	results := make([]AnswerResult, 0, len(questions))

	for _, question := range questions {
		var answerText *string
		if v, ok := submitted[strconv.FormatUint(uint64(question.ID), 10)]; ok {
			answerText = &v
		}

		err := answers.Create(&models.UserAnswer{
			UserID:     userID,
			QuestionID: question.ID,
			AnswerText: answerText,
		})
		if err != nil {
			return nil, err
		}

		results = append(results, AnswerResult{
			Question:      question.QuestionText,
			YourAnswer:    answerText,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     evaluateAnswer(question.CorrectAnswer, answerText),
		})
	}

	return results, nil
}

// calculateScore counts the correct results.
func calculateScore(results []AnswerResult) int {
	score := 0
	for _, r := range results {
		if r.IsCorrect {
			score++
		}
	}
	return score
}

// gradeSubmission runs the full load-process-aggregate pass against the given
// repositories. Score and CorrectAnswers are computed the same way and both
// reported.
func gradeSubmission(questions QuestionRepository, answers UserAnswerRepository, examID, userID uint, submitted map[string]string) (*SubmissionReport, error) {
	loaded, err := questions.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	results, err := processAnswers(answers, loaded, submitted, userID)
	if err != nil {
		return nil, err
	}

	return &SubmissionReport{
		Results:        results,
		Score:          calculateScore(results),
		TotalQuestions: len(results),
		CorrectAnswers: calculateScore(results),
	}, nil
}

type ExamService struct {
	db *gorm.DB

	// transact runs one grading pass against a pair of repositories inside
	// a single unit of work. Tests swap it to hand in in-memory fakes.
	transact func(fn func(QuestionRepository, UserAnswerRepository) error) error
}

func NewExamService(db *gorm.DB) *ExamService {
	s := &ExamService{db: db}
	s.transact = s.gormTransact
	return s
}

func (s *ExamService) gormTransact(fn func(QuestionRepository, UserAnswerRepository) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(gormQuestionRepository{tx}, gormUserAnswerRepository{tx})
	})
}

// Submit grades one submission of an exam by one user. The answers map is
// keyed by question id. The whole pass runs inside a single transaction so a
// submission is recorded all-or-nothing. An exam with no questions (including
// an unknown exam id) yields an empty report, not an error; any load or
// persistence failure comes back as an InternalError carrying the underlying
// message.
func (s *ExamService) Submit(examID, userID uint, submitted map[string]string) (*SubmissionReport, error) {
	if submitted == nil {
		return nil, &ValidationError{Message: "The answers field is required."}
	}

	var report *SubmissionReport
	err := s.transact(func(questions QuestionRepository, answers UserAnswerRepository) error {
		var err error
		report, err = gradeSubmission(questions, answers, examID, userID, submitted)
		return err
	})
	if err != nil {
		return nil, &InternalError{Err: err}
	}
	return report, nil
}

type gormQuestionRepository struct {
	db *gorm.DB
}

func (r gormQuestionRepository) ListByExam(examID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("exam_id = ?", examID).Order("id asc").Find(&questions).Error
	return questions, err
}

type gormUserAnswerRepository struct {
	db *gorm.DB
}

func (r gormUserAnswerRepository) Create(answer *models.UserAnswer) error {
	return r.db.Create(answer).Error
}
