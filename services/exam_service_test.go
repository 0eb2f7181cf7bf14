package services

import (
	"errors"
	"testing"

	"github.com/examchat/backend/models"
)

type fakeQuestionRepo struct {
	questions []models.Question
	err       error
}

func (r fakeQuestionRepo) ListByExam(examID uint) ([]models.Question, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Question
	for _, q := range r.questions {
		if q.ExamID == examID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeAnswerRepo struct {
	created   []models.UserAnswer
	failAfter int // fail once this many rows exist; -1 disables
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{failAfter: -1}
}

func (r *fakeAnswerRepo) Create(a *models.UserAnswer) error {
	if r.failAfter >= 0 && len(r.created) >= r.failAfter {
		return errors.New("insert failed")
	}
	r.created = append(r.created, *a)
	return nil
}

func sampleQuestions() []models.Question {
	return []models.Question{
		{ID: 1, ExamID: 1, QuestionText: "What is the capital of France?", CorrectAnswer: "Paris"},
		{ID: 2, ExamID: 1, QuestionText: "What is 2 + 2?", CorrectAnswer: "4"},
		{ID: 3, ExamID: 1, QuestionText: `Name a programming language that starts with "P".`, CorrectAnswer: "PHP"},
	}
}

func strPtr(s string) *string { return &s }

func TestEvaluateAnswer(t *testing.T) {
	tests := []struct {
		name      string
		correct   string
		submitted *string
		want      bool
	}{
		{name: "exact match", correct: "Paris", submitted: strPtr("Paris"), want: true},
		{name: "nil submission", correct: "Paris", submitted: nil, want: false},
		{name: "trailing whitespace not trimmed", correct: "Paris", submitted: strPtr("Paris "), want: false},
		{name: "case sensitive", correct: "Paris", submitted: strPtr("paris"), want: false},
		{name: "wrong answer", correct: "4", submitted: strPtr("5"), want: false},
		{name: "empty equals empty", correct: "", submitted: strPtr(""), want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := evaluateAnswer(tc.correct, tc.submitted); got != tc.want {
				t.Errorf("evaluateAnswer(%q, %v) = %v, want %v", tc.correct, tc.submitted, got, tc.want)
			}
		})
	}
}

func TestGradeSubmission(t *testing.T) {
	questions := fakeQuestionRepo{questions: sampleQuestions()}
	answers := newFakeAnswerRepo()

	report, err := gradeSubmission(questions, answers, 1, 7, map[string]string{
		"1": "Paris",
		"2": "5",
		"3": "PHP",
	})
	if err != nil {
		t.Fatalf("gradeSubmission returned error: %v", err)
	}

	if report.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", report.TotalQuestions)
	}
	if report.Score != 2 {
		t.Errorf("Score = %d, want 2", report.Score)
	}
	if report.CorrectAnswers != report.Score {
		t.Errorf("CorrectAnswers = %d, want it equal to Score %d", report.CorrectAnswers, report.Score)
	}

	wantCorrect := []bool{true, false, true}
	for i, w := range wantCorrect {
		if report.Results[i].IsCorrect != w {
			t.Errorf("Results[%d].IsCorrect = %v, want %v", i, report.Results[i].IsCorrect, w)
		}
	}

	if len(answers.created) != 3 {
		t.Fatalf("persisted %d answer rows, want 3", len(answers.created))
	}
	for i, row := range answers.created {
		if row.UserID != 7 {
			t.Errorf("row %d UserID = %d, want 7", i, row.UserID)
		}
	}
}

func TestGradeSubmissionOmittedQuestion(t *testing.T) {
	questions := fakeQuestionRepo{questions: sampleQuestions()}
	answers := newFakeAnswerRepo()

	report, err := gradeSubmission(questions, answers, 1, 7, map[string]string{
		"1": "Paris",
		"3": "PHP",
	})
	if err != nil {
		t.Fatalf("gradeSubmission returned error: %v", err)
	}

	second := report.Results[1]
	if second.YourAnswer != nil {
		t.Errorf("Results[1].YourAnswer = %q, want nil", *second.YourAnswer)
	}
	if second.IsCorrect {
		t.Error("Results[1].IsCorrect = true, want false")
	}

	// A non-answer is still recorded as evidence the question was presented.
	if len(answers.created) != 3 {
		t.Fatalf("persisted %d answer rows, want 3", len(answers.created))
	}
	if answers.created[1].QuestionID != 2 {
		t.Errorf("row 1 QuestionID = %d, want 2", answers.created[1].QuestionID)
	}
	if answers.created[1].AnswerText != nil {
		t.Errorf("row 1 AnswerText = %q, want nil", *answers.created[1].AnswerText)
	}
}

func TestGradeSubmissionEmptyExam(t *testing.T) {
	questions := fakeQuestionRepo{questions: sampleQuestions()}
	answers := newFakeAnswerRepo()

	report, err := gradeSubmission(questions, answers, 42, 7, map[string]string{"1": "Paris"})
	if err != nil {
		t.Fatalf("gradeSubmission returned error: %v", err)
	}

	if report.TotalQuestions != 0 || report.Score != 0 || report.CorrectAnswers != 0 {
		t.Errorf("empty exam report = %+v, want all zero counts", report)
	}
	if len(report.Results) != 0 {
		t.Errorf("Results has %d entries, want 0", len(report.Results))
	}
	if len(answers.created) != 0 {
		t.Errorf("persisted %d rows for an empty exam, want 0", len(answers.created))
	}
}

func TestGradeSubmissionPreservesLoadOrder(t *testing.T) {
	// The repository decides the order; grading must not reorder.
	questions := fakeQuestionRepo{questions: []models.Question{
		{ID: 3, ExamID: 1, QuestionText: "third", CorrectAnswer: "c"},
		{ID: 1, ExamID: 1, QuestionText: "first", CorrectAnswer: "a"},
		{ID: 2, ExamID: 1, QuestionText: "second", CorrectAnswer: "b"},
	}}
	answers := newFakeAnswerRepo()

	report, err := gradeSubmission(questions, answers, 1, 7, map[string]string{
		"1": "a", "2": "b", "3": "c",
	})
	if err != nil {
		t.Fatalf("gradeSubmission returned error: %v", err)
	}

	wantOrder := []string{"third", "first", "second"}
	for i, w := range wantOrder {
		if report.Results[i].Question != w {
			t.Errorf("Results[%d].Question = %q, want %q", i, report.Results[i].Question, w)
		}
	}
}

func TestGradeSubmissionPersistenceFailureAborts(t *testing.T) {
	questions := fakeQuestionRepo{questions: sampleQuestions()}
	answers := newFakeAnswerRepo()
	answers.failAfter = 1

	report, err := gradeSubmission(questions, answers, 1, 7, map[string]string{"1": "Paris"})
	if err == nil {
		t.Fatal("expected error when persistence fails, got nil")
	}
	if report != nil {
		t.Errorf("report = %+v, want nil on failure", report)
	}
}

func TestGradeSubmissionResubmissionAppends(t *testing.T) {
	questions := fakeQuestionRepo{questions: sampleQuestions()}
	answers := newFakeAnswerRepo()
	submitted := map[string]string{"1": "Paris", "2": "4", "3": "PHP"}

	first, err := gradeSubmission(questions, answers, 1, 7, submitted)
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	second, err := gradeSubmission(questions, answers, 1, 7, submitted)
	if err != nil {
		t.Fatalf("second submission failed: %v", err)
	}

	if first.Score != second.Score {
		t.Errorf("scores differ between identical submissions: %d vs %d", first.Score, second.Score)
	}
	if len(answers.created) != 6 {
		t.Errorf("persisted %d rows after two submissions, want 6", len(answers.created))
	}
}

// newTestExamService wires the service to in-memory repositories, standing in
// for the gorm transaction.
func newTestExamService(questions QuestionRepository, answers UserAnswerRepository) *ExamService {
	return &ExamService{
		transact: func(fn func(QuestionRepository, UserAnswerRepository) error) error {
			return fn(questions, answers)
		},
	}
}

func TestSubmitReturnsReport(t *testing.T) {
	questions := fakeQuestionRepo{questions: sampleQuestions()}
	answers := newFakeAnswerRepo()
	svc := newTestExamService(questions, answers)

	report, err := svc.Submit(1, 7, map[string]string{"1": "Paris", "2": "5", "3": "PHP"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if report.Score != 2 || report.TotalQuestions != 3 {
		t.Errorf("report = score %d of %d, want 2 of 3", report.Score, report.TotalQuestions)
	}
	if len(answers.created) != 3 {
		t.Errorf("persisted %d answer rows, want 3", len(answers.created))
	}
}

func TestSubmitWrapsFailuresAsInternalError(t *testing.T) {
	questions := fakeQuestionRepo{questions: sampleQuestions()}
	answers := newFakeAnswerRepo()
	answers.failAfter = 0
	svc := newTestExamService(questions, answers)

	report, err := svc.Submit(1, 7, map[string]string{"1": "Paris"})
	if err == nil {
		t.Fatal("expected error when persistence fails, got nil")
	}
	if report != nil {
		t.Errorf("report = %+v, want nil on failure", report)
	}

	var internalErr *InternalError
	if !errors.As(err, &internalErr) {
		t.Fatalf("error type = %T, want *InternalError", err)
	}
	// The underlying message passes through verbatim.
	if err.Error() != "insert failed" {
		t.Errorf("err.Error() = %q, want %q", err.Error(), "insert failed")
	}
}

func TestSubmitWrapsLoadFailures(t *testing.T) {
	questions := fakeQuestionRepo{err: errors.New("connection refused")}
	svc := newTestExamService(questions, newFakeAnswerRepo())

	_, err := svc.Submit(1, 7, map[string]string{"1": "Paris"})

	var internalErr *InternalError
	if !errors.As(err, &internalErr) {
		t.Fatalf("error type = %T, want *InternalError", err)
	}
	if err.Error() != "connection refused" {
		t.Errorf("err.Error() = %q, want %q", err.Error(), "connection refused")
	}
}

func TestSubmitRejectsMissingAnswers(t *testing.T) {
	svc := NewExamService(nil)

	_, err := svc.Submit(1, 7, nil)
	if err == nil {
		t.Fatal("expected validation error for nil answers, got nil")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("error type = %T, want *ValidationError", err)
	}
}
