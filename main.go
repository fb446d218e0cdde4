package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/agentforge-ai/agentforge-engine/pkg/config"
	"github.com/agentforge-ai/agentforge-engine/pkg/database"
	"github.com/agentforge-ai/agentforge-engine/pkg/handlers"
	"github.com/agentforge-ai/agentforge-engine/pkg/llm"
	"github.com/agentforge-ai/agentforge-engine/pkg/repositories"
	"github.com/agentforge-ai/agentforge-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Database),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model))

	ctx := context.Background()

	// Migrations run over database/sql; the serving path uses pgx pools.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:             cfg.Database.ConnectionString(),
		MaxConnections:  cfg.Database.MaxConnections,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	apiKey := cfg.LLM.APIKey
	if cfg.LLM.Provider == "anthropic" {
		apiKey = cfg.LLM.AnthropicAPIKey
	}
	chatClient, err := llm.NewClient(&llm.Config{
		Provider: cfg.LLM.Provider,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		APIKey:   apiKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// Repositories
	agentRepo := repositories.NewAgentRepository(db)
	workflowRepo := repositories.NewWorkflowRepository(db)
	templateRepo := repositories.NewTemplateRepository(db)
	userRepo := repositories.NewUserRepository(db)
	chatRepo := repositories.NewChatRepository(db)

	// Services
	agentService := services.NewAgentService(agentRepo, logger)
	workflowService := services.NewWorkflowService(workflowRepo, logger)
	templateService := services.NewTemplateService(templateRepo, logger)
	userService := services.NewUserService(userRepo, agentRepo, workflowRepo, templateRepo, chatRepo, logger)
	chatService := services.NewChatService(agentRepo, chatRepo, chatClient, logger)

	mux := http.NewServeMux()

	// Handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAgentHandler(agentService, chatService, logger).RegisterRoutes(mux)
	handlers.NewWorkflowHandler(workflowService, logger).RegisterRoutes(mux)
	handlers.NewTemplateHandler(templateService, logger).RegisterRoutes(mux)
	handlers.NewUserHandler(userService, logger).RegisterRoutes(mux)
	handlers.NewLLMHandler(chatClient, logger).RegisterRoutes(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting agentforge-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
