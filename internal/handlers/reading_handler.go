package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/services"
	"github.com/ielts-prep/admin-service/internal/utils"
	"github.com/ielts-prep/admin-service/internal/validator"
)

type ReadingHandler struct {
	BaseHandler
	tests     services.ContentService[models.ReadingTest, models.ReadingPassage]
	passages  services.ContentService[models.ReadingPassage, models.ReadingQuestionPack]
	validator *validator.Validator
}

func NewReadingHandler(
	tests services.ContentService[models.ReadingTest, models.ReadingPassage],
	passages services.ContentService[models.ReadingPassage, models.ReadingQuestionPack],
	validator *validator.Validator,
	logger utils.Logger,
) *ReadingHandler {
	return &ReadingHandler{
		BaseHandler: NewBaseHandler(logger),
		tests:       tests,
		passages:    passages,
		validator:   validator,
	}
}

// marshalAnswers converts the free-form correct_answers payload to a JSON
// column value. Nil input stays nil.
func marshalAnswers(c *gin.Context, value interface{}) (datatypes.JSON, bool) {
	if value == nil {
		return nil, true
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid correct_answers payload"})
		return nil, false
	}
	return datatypes.JSON(data), true
}

// ===== TESTS =====

func (h *ReadingHandler) CreateTest(c *gin.Context) {
	var req validator.ReadingTestCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	test := &models.ReadingTest{
		Title:       req.Title,
		Difficulty:  models.DifficultyLevel(req.Difficulty),
		Description: req.Description,
	}
	if err := h.tests.CreateContainer(c.Request.Context(), test); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"test_id": test.ID,
		"message": "Reading test created successfully",
	})
}

func (h *ReadingHandler) ListTests(c *gin.Context) {
	tests, err := h.tests.ListContainers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

func (h *ReadingHandler) GetTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	test, err := h.tests.GetContainer(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

func (h *ReadingHandler) UpdateTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ReadingTestUpdateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if err := h.tests.UpdateContainer(c.Request.Context(), id, updates); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Reading test updated successfully"})
}

func (h *ReadingHandler) DeleteTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.tests.DeleteContainer(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Reading test deleted successfully"})
}

// ===== PASSAGES =====

func (h *ReadingHandler) CreatePassage(c *gin.Context) {
	var req validator.ReadingPassageCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	passage := &models.ReadingPassage{
		TestID:          req.TestID,
		PassageNumber:   req.PassageNumber,
		Title:           req.Title,
		ContentMarkdown: req.ContentMarkdown,
	}
	if err := h.tests.CreateChild(c.Request.Context(), passage); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"passage_id": passage.ID,
		"message":    "Reading passage created successfully",
	})
}

func (h *ReadingHandler) GetPassage(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	passage, err := h.passages.GetContainer(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, passage)
}

func (h *ReadingHandler) UpdatePassage(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ReadingPassageUpdateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.PassageNumber != nil {
		updates["passage_number"] = *req.PassageNumber
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ContentMarkdown != nil {
		updates["content_markdown"] = *req.ContentMarkdown
	}

	if err := h.tests.UpdateChild(c.Request.Context(), id, updates); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Reading passage updated successfully"})
}

func (h *ReadingHandler) DeletePassage(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.tests.DeleteChild(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Reading passage deleted successfully"})
}

// ===== QUESTION PACKS =====

func (h *ReadingHandler) CreateQuestionPack(c *gin.Context) {
	var req validator.ReadingQuestionPackCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	answers, ok := marshalAnswers(c, req.CorrectAnswers)
	if !ok {
		return
	}

	pack := &models.ReadingQuestionPack{
		PassageID:         req.PassageID,
		QuestionStart:     req.QuestionStart,
		QuestionEnd:       req.QuestionEnd,
		QuestionsMarkdown: req.QuestionsMarkdown,
		CorrectAnswers:    answers,
		OrderMatters:      true,
	}
	if req.OrderMatters != nil {
		pack.OrderMatters = *req.OrderMatters
	}

	if err := h.passages.CreateChild(c.Request.Context(), pack); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"question_pack_id": pack.ID,
		"message":          "Reading question pack created successfully",
	})
}

func (h *ReadingHandler) GetQuestionPack(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	pack, err := h.passages.GetChild(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pack)
}

func (h *ReadingHandler) UpdateQuestionPack(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ReadingQuestionPackUpdateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.QuestionStart != nil {
		updates["question_start"] = *req.QuestionStart
	}
	if req.QuestionEnd != nil {
		updates["question_end"] = *req.QuestionEnd
	}
	if req.QuestionsMarkdown != nil {
		updates["questions_markdown"] = *req.QuestionsMarkdown
	}
	if req.CorrectAnswers != nil {
		answers, ok := marshalAnswers(c, req.CorrectAnswers)
		if !ok {
			return
		}
		updates["correct_answers"] = answers
	}
	if req.OrderMatters != nil {
		updates["order_matters"] = *req.OrderMatters
	}

	if err := h.passages.UpdateChild(c.Request.Context(), id, updates); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Reading question pack updated successfully"})
}

func (h *ReadingHandler) DeleteQuestionPack(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.passages.DeleteChild(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Reading question pack deleted successfully"})
}
