package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/services"
	"github.com/ielts-prep/admin-service/internal/utils"
	"github.com/ielts-prep/admin-service/internal/validator"
)

type SpeakingHandler struct {
	BaseHandler
	service   services.ContentService[models.SpeakingTest, models.SpeakingQuestion]
	validator *validator.Validator
}

func NewSpeakingHandler(
	service services.ContentService[models.SpeakingTest, models.SpeakingQuestion],
	validator *validator.Validator,
	logger utils.Logger,
) *SpeakingHandler {
	return &SpeakingHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   validator,
	}
}

func (h *SpeakingHandler) CreateTest(c *gin.Context) {
	var req validator.SpeakingTestCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	test := &models.SpeakingTest{
		Title:       req.Title,
		Difficulty:  models.DifficultyLevel(req.Difficulty),
		Description: req.Description,
	}
	if err := h.service.CreateContainer(c.Request.Context(), test); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"test_id": test.ID,
		"message": "Speaking test created successfully",
	})
}

func (h *SpeakingHandler) ListTests(c *gin.Context) {
	tests, err := h.service.ListContainers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

func (h *SpeakingHandler) GetTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	test, err := h.service.GetContainer(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

func (h *SpeakingHandler) UpdateTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.SpeakingTestUpdateRequest
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

	if err := h.service.UpdateContainer(c.Request.Context(), id, updates); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Speaking test updated successfully"})
}

func (h *SpeakingHandler) DeleteTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.DeleteContainer(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Speaking test deleted successfully"})
}

func (h *SpeakingHandler) CreateQuestion(c *gin.Context) {
	var req validator.SpeakingQuestionCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	question := &models.SpeakingQuestion{
		TestID:          req.TestID,
		QuestionNumber:  req.QuestionNumber,
		Prompt:          req.Prompt,
		PreparationTime: models.DefaultPreparationTime,
		ResponseTime:    models.DefaultResponseTime,
	}
	if req.PreparationTime != nil {
		question.PreparationTime = *req.PreparationTime
	}
	if req.ResponseTime != nil {
		question.ResponseTime = *req.ResponseTime
	}

	if err := h.service.CreateChild(c.Request.Context(), question); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"question_id": question.ID,
		"message":     "Speaking question created successfully",
	})
}

func (h *SpeakingHandler) GetQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	question, err := h.service.GetChild(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *SpeakingHandler) UpdateQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.SpeakingQuestionUpdateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.QuestionNumber != nil {
		updates["question_number"] = *req.QuestionNumber
	}
	if req.Prompt != nil {
		updates["prompt"] = *req.Prompt
	}
	if req.PreparationTime != nil {
		updates["preparation_time"] = *req.PreparationTime
	}
	if req.ResponseTime != nil {
		updates["response_time"] = *req.ResponseTime
	}

	if err := h.service.UpdateChild(c.Request.Context(), id, updates); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Speaking question updated successfully"})
}

func (h *SpeakingHandler) DeleteQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.DeleteChild(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Speaking question deleted successfully"})
}
