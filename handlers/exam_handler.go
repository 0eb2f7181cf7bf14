package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/examchat/backend/database"
	"github.com/examchat/backend/models"
	"github.com/examchat/backend/services"
	"github.com/examchat/backend/utils"
)

type ExamHandler struct {
	exams *services.ExamService
}

func NewExamHandler(exams *services.ExamService) *ExamHandler {
	return &ExamHandler{exams: exams}
}

func (h *ExamHandler) ListExams(c *fiber.Ctx) error {
	var exams []models.Exam
	if err := database.DB.Find(&exams).Error; err != nil {
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}
	return utils.Success(c, exams, "All exam list!", fiber.StatusOK)
}

func (h *ExamHandler) GetExam(c *fiber.Ctx) error {
	examID := c.Params("examId")

	var exam models.Exam
	err := database.DB.Preload("Questions.Options").First(&exam, "id = ?", examID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, "Exam not found", fiber.StatusNotFound)
		}
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	return utils.Success(c, exam, "Specific exam!", fiber.StatusOK)
}

type SubmitExamRequest struct {
	Answers map[string]string `json:"answers"`
}

// SubmitExam grades the caller's answers for one exam. Validation failures
// come back as 422, anything that breaks during grading as 500 with the
// underlying message. A perfect score on a non-empty exam triggers
// certificate generation in the background.
func (h *ExamHandler) SubmitExam(c *fiber.Ctx) error {
	userID := currentUserID(c)

	examID, err := strconv.ParseUint(c.Params("examId"), 10, 64)
	if err != nil {
		return utils.Error(c, "Invalid exam id", fiber.StatusBadRequest)
	}

	var req SubmitExamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, "The answers field must be an object.", fiber.StatusUnprocessableEntity)
	}

	report, err := h.exams.Submit(uint(examID), userID, req.Answers)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return utils.Error(c, validationErr.Error(), fiber.StatusUnprocessableEntity)
		}
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	if report.TotalQuestions > 0 && report.CorrectAnswers == report.TotalQuestions {
		var exam models.Exam
		if err := database.DB.First(&exam, examID).Error; err == nil {
			go services.CheckAndGenerateCertificate(userID, exam, report)
		}
	}

	return utils.Success(c, report, "Exam submitted successfully!", fiber.StatusOK)
}
