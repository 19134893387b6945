package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/services"
	"github.com/ielts-prep/admin-service/internal/utils"
	"github.com/ielts-prep/admin-service/internal/validator"
)

type ListeningHandler struct {
	BaseHandler
	tests     services.ContentService[models.ListeningTest, models.ListeningSection]
	sections  services.ContentService[models.ListeningSection, models.ListeningQuestionPack]
	validator *validator.Validator
}

func NewListeningHandler(
	tests services.ContentService[models.ListeningTest, models.ListeningSection],
	sections services.ContentService[models.ListeningSection, models.ListeningQuestionPack],
	validator *validator.Validator,
	logger utils.Logger,
) *ListeningHandler {
	return &ListeningHandler{
		BaseHandler: NewBaseHandler(logger),
		tests:       tests,
		sections:    sections,
		validator:   validator,
	}
}

// ===== TESTS =====

func (h *ListeningHandler) CreateTest(c *gin.Context) {
	var req validator.ListeningTestCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	test := &models.ListeningTest{
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
		"message": "Listening test created successfully",
	})
}

func (h *ListeningHandler) ListTests(c *gin.Context) {
	tests, err := h.tests.ListContainers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

func (h *ListeningHandler) GetTest(c *gin.Context) {
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

func (h *ListeningHandler) UpdateTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ListeningTestUpdateRequest
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
	c.JSON(http.StatusOK, MessageResponse{Message: "Listening test updated successfully"})
}

func (h *ListeningHandler) DeleteTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.tests.DeleteContainer(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Listening test deleted successfully"})
}

// ===== SECTIONS =====

func (h *ListeningHandler) CreateSection(c *gin.Context) {
	var req validator.ListeningSectionCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	section := &models.ListeningSection{
		TestID:        req.TestID,
		SectionNumber: req.SectionNumber,
		SectionType:   req.SectionType,
		AudioFilePath: req.AudioFilePath,
		Context:       req.Context,
	}
	if err := h.tests.CreateChild(c.Request.Context(), section); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"section_id": section.ID,
		"message":    "Listening section created successfully",
	})
}

func (h *ListeningHandler) GetSection(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	section, err := h.sections.GetContainer(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *ListeningHandler) UpdateSection(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ListeningSectionUpdateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.SectionNumber != nil {
		updates["section_number"] = *req.SectionNumber
	}
	if req.SectionType != nil {
		updates["section_type"] = *req.SectionType
	}
	if req.AudioFilePath != nil {
		updates["audio_file_path"] = *req.AudioFilePath
	}
	if req.Context != nil {
		updates["context"] = *req.Context
	}

	if err := h.tests.UpdateChild(c.Request.Context(), id, updates); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Listening section updated successfully"})
}

func (h *ListeningHandler) DeleteSection(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.tests.DeleteChild(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Listening section deleted successfully"})
}

// ===== QUESTION PACKS =====

func (h *ListeningHandler) CreateQuestionPack(c *gin.Context) {
	var req validator.ListeningQuestionPackCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	answers, ok := marshalAnswers(c, req.CorrectAnswers)
	if !ok {
		return
	}

	pack := &models.ListeningQuestionPack{
		SectionID:         req.SectionID,
		QuestionStart:     req.QuestionStart,
		QuestionEnd:       req.QuestionEnd,
		QuestionsMarkdown: req.QuestionsMarkdown,
		CorrectAnswers:    answers,
		ImagePath:         req.ImagePath,
		OrderMatters:      true,
	}
	if req.OrderMatters != nil {
		pack.OrderMatters = *req.OrderMatters
	}

	if err := h.sections.CreateChild(c.Request.Context(), pack); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"question_pack_id": pack.ID,
		"message":          "Listening question pack created successfully",
	})
}

func (h *ListeningHandler) GetQuestionPack(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	pack, err := h.sections.GetChild(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pack)
}

func (h *ListeningHandler) UpdateQuestionPack(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ListeningQuestionPackUpdateRequest
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
	if req.ImagePath != nil {
		updates["image_path"] = *req.ImagePath
	}
	if req.OrderMatters != nil {
		updates["order_matters"] = *req.OrderMatters
	}

	if err := h.sections.UpdateChild(c.Request.Context(), id, updates); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Listening question pack updated successfully"})
}

func (h *ListeningHandler) DeleteQuestionPack(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.sections.DeleteChild(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Listening question pack deleted successfully"})
}
