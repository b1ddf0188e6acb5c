package config

const (
	KeyGitHubToken    = "github_token"
	KeyGitHubAPIBase  = "github_api_base"
	KeyOpenAIAPIKey   = "openai_api_key"
	KeyOpenAIModel    = "openai_model"
	KeyEmbeddingModel = "openai_embedding_model"
	KeyPostgresURL    = "postgres_url"
	KeyLogLevel       = "log_level"
	KeyHTTPHost       = "http_host"
	KeyHTTPPort       = "http_port"
	KeyLLMCallTimeout = "llm_call_timeout"
	KeyMigrationsDir  = "db_migrations_dir"
	KeyAutoMigrate    = "auto_migrate"
	KeyHistoryLimit   = "history_default_limit"
	KeyDBDebug        = "db_debug"
)
