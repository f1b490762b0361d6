package app

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/llm"
	"jobboard/internal/infrastructure/oauth"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	ucapp "jobboard/internal/usecase/application"
	ucauth "jobboard/internal/usecase/auth"
	"jobboard/internal/usecase/chatbot"
	ucompany "jobboard/internal/usecase/company"
	ucjob "jobboard/internal/usecase/job"
	"jobboard/internal/usecase/profile"
	"jobboard/internal/ws"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   *jwt.HMACService

	Health *handler.HealthHandler
	WS     *ws.Handler
	API    v1.Handlers
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Migrations.Dir, Logger: logger}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Hub:    ws.NewHub(logger),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
	}

	if err := c.wire(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) wire() error {
	cfg := c.Config

	userRepo := repository.NewPostgresUserRepository(c.DB)
	experienceRepo := repository.NewPostgresWorkExperienceRepository(c.DB)
	educationRepo := repository.NewPostgresEducationRepository(c.DB)
	companyRepo := repository.NewPostgresCompanyRepository(c.DB)
	jobRepo := repository.NewPostgresJobRepository(c.DB)
	applicationRepo := repository.NewPostgresApplicationRepository(c.DB)

	var completer chatbot.Completer
	client, err := llm.NewOpenAI(cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		c.Logger.Printf("[Chatbot] OPENAI_API_KEY not set, free-text questions get a fallback reply")
	case err != nil:
		return err
	default:
		completer = client
	}

	docs, err := chatbot.LoadDocs(cfg.LLM.DocsPath)
	if err != nil {
		return err
	}

	authUC := ucauth.NewService(userRepo, c.JWT)
	profileUC := profile.NewService(userRepo, experienceRepo, educationRepo, companyRepo, c.Cache, c.Logger)
	companyUC := ucompany.NewService(companyRepo, userRepo, c.Logger)
	jobUC := ucjob.NewService(jobRepo, companyRepo, c.Cache, c.Hub, c.Logger)
	applicationUC := ucapp.NewService(applicationRepo, jobRepo, companyRepo, c.Hub, c.Logger)
	chatbotUC := chatbot.NewService(chatbot.Deps{
		Users:        userRepo,
		Experiences:  experienceRepo,
		Jobs:         jobRepo,
		Applications: applicationRepo,
		LLM:          completer,
		Cache:        c.Cache,
		Docs:         docs,
		Logger:       c.Logger,
	})

	var google handler.GoogleProvider
	if cfg.Google.Enabled() {
		google = oauth.NewGoogle(cfg.Google)
	} else {
		c.Logger.Printf("[Auth] Google OAuth not configured, /auth/google disabled")
	}

	c.Health = handler.NewHealthHandler(c.DB, c.Cache)
	c.WS = ws.NewHandler(c.Hub, c.JWT, []string{cfg.App.FrontendURL}, c.Logger)
	c.API = v1.Handlers{
		Auth:           handler.NewAuthHandler(authUC, google, c.JWT, cfg.App.FrontendURL, c.Logger),
		Users:          handler.NewUserHandler(profileUC, jobUC),
		Companies:      handler.NewCompanyHandler(companyUC, jobUC),
		Jobs:           handler.NewJobHandler(jobUC),
		Applications:   handler.NewApplicationHandler(applicationUC),
		Chatbot:        handler.NewChatbotHandler(chatbotUC),
		AuthMiddleware: middleware.NewAuthMiddleware(c.JWT).Middleware(),
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
