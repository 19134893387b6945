package services

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ielts-prep/admin-service/internal/auth"
	"github.com/ielts-prep/admin-service/internal/events"
	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories"
)

// ServiceManagerConfig holds the dependencies every service shares.
type ServiceManagerConfig struct {
	DB          *gorm.DB
	Repo        repositories.Repository
	RedisClient *redis.Client
	Logger      *slog.Logger
	Publisher   *events.Publisher

	Authenticator *auth.Authenticator
	Codec         *auth.Codec
	TokenTTL      time.Duration
}

type serviceManager struct {
	config ServiceManagerConfig

	auth AuthService

	speakingTests     ContentService[models.SpeakingTest, models.SpeakingQuestion]
	readingTests      ContentService[models.ReadingTest, models.ReadingPassage]
	readingPassages   ContentService[models.ReadingPassage, models.ReadingQuestionPack]
	writingTests      ContentService[models.WritingTest, models.WritingTask]
	listeningTests    ContentService[models.ListeningTest, models.ListeningSection]
	listeningSections ContentService[models.ListeningSection, models.ListeningQuestionPack]

	users     UserService
	dashboard DashboardService
}

// NewServiceManager wires every service against the shared repository,
// transaction source, logger, and event publisher.
func NewServiceManager(config ServiceManagerConfig) ServiceManager {
	sm := &serviceManager{config: config}

	sm.auth = NewAuthService(config.Authenticator, config.Codec, config.TokenTTL, config.Logger)

	sm.speakingTests = NewContentService(config.Repo.SpeakingTests(), config.DB, config.Logger, config.Publisher,
		ContentDescriptor[models.SpeakingTest, models.SpeakingQuestion]{
			Module:          models.ModuleSpeaking,
			ContainerEntity: "test",
			ChildEntity:     "question",
			ContainerID:     func(t *models.SpeakingTest) uint { return t.ID },
			ChildID:         func(q *models.SpeakingQuestion) uint { return q.ID },
		})

	sm.readingTests = NewContentService(config.Repo.ReadingTests(), config.DB, config.Logger, config.Publisher,
		ContentDescriptor[models.ReadingTest, models.ReadingPassage]{
			Module:          models.ModuleReading,
			ContainerEntity: "test",
			ChildEntity:     "passage",
			ContainerID:     func(t *models.ReadingTest) uint { return t.ID },
			ChildID:         func(p *models.ReadingPassage) uint { return p.ID },
		})

	sm.readingPassages = NewContentService(config.Repo.ReadingPassages(), config.DB, config.Logger, config.Publisher,
		ContentDescriptor[models.ReadingPassage, models.ReadingQuestionPack]{
			Module:          models.ModuleReading,
			ContainerEntity: "passage",
			ChildEntity:     "question_pack",
			ContainerID:     func(p *models.ReadingPassage) uint { return p.ID },
			ChildID:         func(qp *models.ReadingQuestionPack) uint { return qp.ID },
		})

	sm.writingTests = NewContentService(config.Repo.WritingTests(), config.DB, config.Logger, config.Publisher,
		ContentDescriptor[models.WritingTest, models.WritingTask]{
			Module:          models.ModuleWriting,
			ContainerEntity: "test",
			ChildEntity:     "task",
			ContainerID:     func(t *models.WritingTest) uint { return t.ID },
			ChildID:         func(task *models.WritingTask) uint { return task.ID },
		})

	sm.listeningTests = NewContentService(config.Repo.ListeningTests(), config.DB, config.Logger, config.Publisher,
		ContentDescriptor[models.ListeningTest, models.ListeningSection]{
			Module:          models.ModuleListening,
			ContainerEntity: "test",
			ChildEntity:     "section",
			ContainerID:     func(t *models.ListeningTest) uint { return t.ID },
			ChildID:         func(s *models.ListeningSection) uint { return s.ID },
		})

	sm.listeningSections = NewContentService(config.Repo.ListeningSections(), config.DB, config.Logger, config.Publisher,
		ContentDescriptor[models.ListeningSection, models.ListeningQuestionPack]{
			Module:          models.ModuleListening,
			ContainerEntity: "section",
			ChildEntity:     "question_pack",
			ContainerID:     func(s *models.ListeningSection) uint { return s.ID },
			ChildID:         func(qp *models.ListeningQuestionPack) uint { return qp.ID },
		})

	sm.users = NewUserService(config.Repo, config.DB, config.Logger)
	sm.dashboard = NewDashboardService(config.Repo, config.RedisClient, config.Logger)

	return sm
}

func (sm *serviceManager) Auth() AuthService { return sm.auth }

func (sm *serviceManager) SpeakingTests() ContentService[models.SpeakingTest, models.SpeakingQuestion] {
	return sm.speakingTests
}

func (sm *serviceManager) ReadingTests() ContentService[models.ReadingTest, models.ReadingPassage] {
	return sm.readingTests
}

func (sm *serviceManager) ReadingPassages() ContentService[models.ReadingPassage, models.ReadingQuestionPack] {
	return sm.readingPassages
}

func (sm *serviceManager) WritingTests() ContentService[models.WritingTest, models.WritingTask] {
	return sm.writingTests
}

func (sm *serviceManager) ListeningTests() ContentService[models.ListeningTest, models.ListeningSection] {
	return sm.listeningTests
}

func (sm *serviceManager) ListeningSections() ContentService[models.ListeningSection, models.ListeningQuestionPack] {
	return sm.listeningSections
}

func (sm *serviceManager) Users() UserService          { return sm.users }
func (sm *serviceManager) Dashboard() DashboardService { return sm.dashboard }

// Shutdown closes the event publisher.
func (sm *serviceManager) Shutdown() error {
	return sm.config.Publisher.Close()
}
