package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/asanchezr/gttb/internal/blog"
	"github.com/asanchezr/gttb/internal/config"
	"github.com/asanchezr/gttb/internal/db"
	dbmigrate "github.com/asanchezr/gttb/internal/db/migrate"
	"github.com/asanchezr/gttb/internal/generate"
	"github.com/asanchezr/gttb/internal/github"
	"github.com/asanchezr/gttb/internal/httpapi"
	"github.com/asanchezr/gttb/internal/llm"
	"github.com/asanchezr/gttb/internal/logging"
	"github.com/asanchezr/gttb/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:   "server",
		Short: "PR-to-blog draft service",
		RunE:  run,
	}

	root.PersistentFlags().String("postgres-url", "", "Postgres connection URL")
	root.PersistentFlags().String("github-token", "", "GitHub API token")
	root.PersistentFlags().String("openai-api-key", "", "OpenAI API key")
	root.PersistentFlags().String("openai-model", "", "OpenAI completion model")
	root.PersistentFlags().String("host", "", "HTTP host")
	root.PersistentFlags().Int("port", 0, "HTTP port")
	root.PersistentFlags().Bool("auto-migrate", false, "Apply pending migrations on startup")

	config.Init(root)

	_ = viper.BindPFlag(config.KeyPostgresURL, root.PersistentFlags().Lookup("postgres-url"))
	_ = viper.BindPFlag(config.KeyGitHubToken, root.PersistentFlags().Lookup("github-token"))
	_ = viper.BindPFlag(config.KeyOpenAIAPIKey, root.PersistentFlags().Lookup("openai-api-key"))
	_ = viper.BindPFlag(config.KeyOpenAIModel, root.PersistentFlags().Lookup("openai-model"))
	_ = viper.BindPFlag(config.KeyHTTPHost, root.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag(config.KeyHTTPPort, root.PersistentFlags().Lookup("port"))
	_ = viper.BindPFlag(config.KeyAutoMigrate, root.PersistentFlags().Lookup("auto-migrate"))

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.New(logging.ForLevel(config.LogLevel())).WithName("server")

	dsn := config.PostgresURL()
	if dsn == "" {
		return errors.New("POSTGRES_URL must be set")
	}

	database, err := db.NewDatabase(db.Config{DSN: dsn, Debug: config.DBDebug()})
	if err != nil {
		return err
	}
	defer database.Close()

	startupCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	if err := database.Ping(startupCtx); err != nil {
		return err
	}
	if err := dbmigrate.EnsureCurrent(startupCtx, database.Bun(), config.MigrationsDir(), config.AutoMigrate()); err != nil {
		return err
	}

	ghClient, err := github.NewClient(github.ClientConfig{
		Token:   config.GitHubToken(),
		BaseURL: config.GitHubAPIBase(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	callTimeout, err := time.ParseDuration(config.LLMCallTimeout())
	if err != nil {
		return err
	}

	completions, err := llm.NewCompletionClient(llm.Config{
		APIKey:      config.OpenAIAPIKey(),
		Model:       config.OpenAIModel(),
		CallTimeout: callTimeout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	embedder, err := llm.NewEmbeddingClient(config.OpenAIAPIKey(), config.EmbeddingModel(), callTimeout, logger)
	if err != nil {
		return err
	}

	generator := generate.NewGenerator(completions, logger)
	store := db.NewDraftRepository(database)
	service := blog.NewService(ghClient, generator, store, embedder, logger)

	handler := httpapi.NewHandler(service, config.HistoryDefaultLimit(), logger)
	router := httpapi.NewRouter(handler, logger)

	mcpServer := mcp.New(mcp.NewConfig(service))
	router.Any(mcp.EndpointPath, gin.WrapH(mcpServer.Handler))

	addr := config.HTTPHost() + ":" + strconv.Itoa(config.HTTPPort())
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
