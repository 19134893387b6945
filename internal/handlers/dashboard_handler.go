package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ielts-prep/admin-service/internal/services"
	"github.com/ielts-prep/admin-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboard services.DashboardService
	users     services.UserService
}

func NewDashboardHandler(dashboard services.DashboardService, users services.UserService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		dashboard:   dashboard,
		users:       users,
	}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) GetRecentSubmissions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 {
		limit = 5
	}

	recent, err := h.dashboard.RecentSubmissions(c.Request.Context(), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recent)
}

func (h *DashboardHandler) GetTestsOverview(c *gin.Context) {
	overview, err := h.dashboard.TestsOverview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *DashboardHandler) ListUsers(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		limit = 100
	}

	users, err := h.users.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *DashboardHandler) GetUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *DashboardHandler) ActivateUser(c *gin.Context) {
	h.setUserActive(c, true, "User activated successfully")
}

func (h *DashboardHandler) DeactivateUser(c *gin.Context) {
	h.setUserActive(c, false, "User deactivated successfully")
}

func (h *DashboardHandler) setUserActive(c *gin.Context, active bool, message string) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.users.SetActive(c.Request.Context(), id, active); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func (h *DashboardHandler) DeleteUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// ExportUsers streams an xlsx workbook of users and submission counts.
func (h *DashboardHandler) ExportUsers(c *gin.Context) {
	h.LogRequest(c, "Exporting users to xlsx")

	file, err := h.dashboard.ExportUsers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		utils.LoggerFromContext(c.Request.Context(), h.logger).Error("Failed to stream export", "error", err)
	}
}
