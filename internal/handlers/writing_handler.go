package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/services"
	"github.com/ielts-prep/admin-service/internal/utils"
	"github.com/ielts-prep/admin-service/internal/validator"
)

type WritingHandler struct {
	BaseHandler
	service   services.ContentService[models.WritingTest, models.WritingTask]
	validator *validator.Validator
}

func NewWritingHandler(
	service services.ContentService[models.WritingTest, models.WritingTask],
	validator *validator.Validator,
	logger utils.Logger,
) *WritingHandler {
	return &WritingHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   validator,
	}
}

func (h *WritingHandler) CreateTest(c *gin.Context) {
	var req validator.WritingTestCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	test := &models.WritingTest{
		Title:       req.Title,
		TestType:    models.WritingTestType(req.TestType),
		Difficulty:  models.DifficultyLevel(req.Difficulty),
		Description: req.Description,
	}
	if err := h.service.CreateContainer(c.Request.Context(), test); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"test_id": test.ID,
		"message": "Writing test created successfully",
	})
}

func (h *WritingHandler) ListTests(c *gin.Context) {
	tests, err := h.service.ListContainers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

func (h *WritingHandler) GetTest(c *gin.Context) {
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

func (h *WritingHandler) UpdateTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.WritingTestUpdateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.TestType != nil {
		updates["test_type"] = *req.TestType
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
	c.JSON(http.StatusOK, MessageResponse{Message: "Writing test updated successfully"})
}

func (h *WritingHandler) DeleteTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.DeleteContainer(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Writing test deleted successfully"})
}

func (h *WritingHandler) CreateTask(c *gin.Context) {
	var req validator.WritingTaskCreateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	task := &models.WritingTask{
		TestID:           req.TestID,
		TaskNumber:       req.TaskNumber,
		TaskType:         req.TaskType,
		PromptMarkdown:   req.PromptMarkdown,
		MinWords:         req.MinWords,
		MaxWords:         req.MaxWords,
		TimeLimitMinutes: models.DefaultTimeLimitMinutes,
	}
	if req.TimeLimitMinutes != nil {
		task.TimeLimitMinutes = *req.TimeLimitMinutes
	}

	if err := h.service.CreateChild(c.Request.Context(), task); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task_id": task.ID,
		"message": "Writing task created successfully",
	})
}

func (h *WritingHandler) GetTask(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	task, err := h.service.GetChild(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *WritingHandler) UpdateTask(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.WritingTaskUpdateRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.TaskNumber != nil {
		updates["task_number"] = *req.TaskNumber
	}
	if req.TaskType != nil {
		updates["task_type"] = *req.TaskType
	}
	if req.PromptMarkdown != nil {
		updates["prompt_markdown"] = *req.PromptMarkdown
	}
	if req.MinWords != nil {
		updates["min_words"] = *req.MinWords
	}
	if req.MaxWords != nil {
		updates["max_words"] = *req.MaxWords
	}
	if req.TimeLimitMinutes != nil {
		updates["time_limit_minutes"] = *req.TimeLimitMinutes
	}

	if err := h.service.UpdateChild(c.Request.Context(), id, updates); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Writing task updated successfully"})
}

func (h *WritingHandler) DeleteTask(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.DeleteChild(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Writing task deleted successfully"})
}
