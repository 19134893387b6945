package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ielts-prep/admin-service/internal/auth"
	"github.com/ielts-prep/admin-service/internal/services"
	"github.com/ielts-prep/admin-service/internal/utils"
	"github.com/ielts-prep/admin-service/internal/validator"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	speakingHandler  *SpeakingHandler
	readingHandler   *ReadingHandler
	writingHandler   *WritingHandler
	listeningHandler *ListeningHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *AdminAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	authenticator *auth.Authenticator,
) *HandlerManager {
	return &HandlerManager{
		authHandler:     NewAuthHandler(serviceManager.Auth(), validator, logger),
		speakingHandler: NewSpeakingHandler(serviceManager.SpeakingTests(), validator, logger),
		readingHandler: NewReadingHandler(
			serviceManager.ReadingTests(), serviceManager.ReadingPassages(), validator, logger),
		writingHandler: NewWritingHandler(serviceManager.WritingTests(), validator, logger),
		listeningHandler: NewListeningHandler(
			serviceManager.ListeningTests(), serviceManager.ListeningSections(), validator, logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Users(), logger),
		authMiddleware:   NewAdminAuthMiddleware(authenticator),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "admin-service",
		})
	})

	// Public: admin login only
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/admin/login", hm.authHandler.Login)
	}

	// Everything under /admin requires a valid admin token
	admin := router.Group("/admin")
	admin.Use(hm.authMiddleware.RequireAdmin())
	{
		speaking := admin.Group("/speaking")
		{
			speaking.POST("/tests", hm.speakingHandler.CreateTest)
			speaking.GET("/tests", hm.speakingHandler.ListTests)
			speaking.GET("/tests/:id", hm.speakingHandler.GetTest)
			speaking.PUT("/tests/:id", hm.speakingHandler.UpdateTest)
			speaking.DELETE("/tests/:id", hm.speakingHandler.DeleteTest)

			speaking.POST("/questions", hm.speakingHandler.CreateQuestion)
			speaking.GET("/questions/:id", hm.speakingHandler.GetQuestion)
			speaking.PUT("/questions/:id", hm.speakingHandler.UpdateQuestion)
			speaking.DELETE("/questions/:id", hm.speakingHandler.DeleteQuestion)
		}

		reading := admin.Group("/reading")
		{
			reading.POST("/tests", hm.readingHandler.CreateTest)
			reading.GET("/tests", hm.readingHandler.ListTests)
			reading.GET("/tests/:id", hm.readingHandler.GetTest)
			reading.PUT("/tests/:id", hm.readingHandler.UpdateTest)
			reading.DELETE("/tests/:id", hm.readingHandler.DeleteTest)

			reading.POST("/passages", hm.readingHandler.CreatePassage)
			reading.GET("/passages/:id", hm.readingHandler.GetPassage)
			reading.PUT("/passages/:id", hm.readingHandler.UpdatePassage)
			reading.DELETE("/passages/:id", hm.readingHandler.DeletePassage)

			reading.POST("/question-packs", hm.readingHandler.CreateQuestionPack)
			reading.GET("/question-packs/:id", hm.readingHandler.GetQuestionPack)
			reading.PUT("/question-packs/:id", hm.readingHandler.UpdateQuestionPack)
			reading.DELETE("/question-packs/:id", hm.readingHandler.DeleteQuestionPack)
		}

		writing := admin.Group("/writing")
		{
			writing.POST("/tests", hm.writingHandler.CreateTest)
			writing.GET("/tests", hm.writingHandler.ListTests)
			writing.GET("/tests/:id", hm.writingHandler.GetTest)
			writing.PUT("/tests/:id", hm.writingHandler.UpdateTest)
			writing.DELETE("/tests/:id", hm.writingHandler.DeleteTest)

			writing.POST("/tasks", hm.writingHandler.CreateTask)
			writing.GET("/tasks/:id", hm.writingHandler.GetTask)
			writing.PUT("/tasks/:id", hm.writingHandler.UpdateTask)
			writing.DELETE("/tasks/:id", hm.writingHandler.DeleteTask)
		}

		listening := admin.Group("/listening")
		{
			listening.POST("/tests", hm.listeningHandler.CreateTest)
			listening.GET("/tests", hm.listeningHandler.ListTests)
			listening.GET("/tests/:id", hm.listeningHandler.GetTest)
			listening.PUT("/tests/:id", hm.listeningHandler.UpdateTest)
			listening.DELETE("/tests/:id", hm.listeningHandler.DeleteTest)

			listening.POST("/sections", hm.listeningHandler.CreateSection)
			listening.GET("/sections/:id", hm.listeningHandler.GetSection)
			listening.PUT("/sections/:id", hm.listeningHandler.UpdateSection)
			listening.DELETE("/sections/:id", hm.listeningHandler.DeleteSection)

			listening.POST("/question-packs", hm.listeningHandler.CreateQuestionPack)
			listening.GET("/question-packs/:id", hm.listeningHandler.GetQuestionPack)
			listening.PUT("/question-packs/:id", hm.listeningHandler.UpdateQuestionPack)
			listening.DELETE("/question-packs/:id", hm.listeningHandler.DeleteQuestionPack)
		}

		dashboard := admin.Group("/dashboard")
		{
			dashboard.GET("/stats", hm.dashboardHandler.GetStats)
			dashboard.GET("/submissions/recent", hm.dashboardHandler.GetRecentSubmissions)
			dashboard.GET("/tests/overview", hm.dashboardHandler.GetTestsOverview)

			dashboard.GET("/users", hm.dashboardHandler.ListUsers)
			dashboard.GET("/users/export", hm.dashboardHandler.ExportUsers)
			dashboard.GET("/users/:id", hm.dashboardHandler.GetUser)
			dashboard.PUT("/users/:id/activate", hm.dashboardHandler.ActivateUser)
			dashboard.PUT("/users/:id/deactivate", hm.dashboardHandler.DeactivateUser)
			dashboard.DELETE("/users/:id", hm.dashboardHandler.DeleteUser)
		}
	}
}
