package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyGitHubAPIBase, "https://api.github.com")
	viper.SetDefault(KeyOpenAIModel, "gpt-4o-mini")
	viper.SetDefault(KeyEmbeddingModel, "text-embedding-3-small")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyHTTPHost, "0.0.0.0")
	viper.SetDefault(KeyHTTPPort, 8000)
	viper.SetDefault(KeyLLMCallTimeout, "2m")
	viper.SetDefault(KeyMigrationsDir, "internal/db/migrations")
	viper.SetDefault(KeyAutoMigrate, false)
	viper.SetDefault(KeyHistoryLimit, 20)
	viper.SetDefault(KeyDBDebug, false)
}

func GitHubToken() string        { return viper.GetString(KeyGitHubToken) }
func GitHubAPIBase() string      { return viper.GetString(KeyGitHubAPIBase) }
func OpenAIAPIKey() string       { return viper.GetString(KeyOpenAIAPIKey) }
func OpenAIModel() string        { return viper.GetString(KeyOpenAIModel) }
func EmbeddingModel() string     { return viper.GetString(KeyEmbeddingModel) }
func PostgresURL() string        { return viper.GetString(KeyPostgresURL) }
func LogLevel() string           { return viper.GetString(KeyLogLevel) }
func HTTPHost() string           { return viper.GetString(KeyHTTPHost) }
func HTTPPort() int              { return viper.GetInt(KeyHTTPPort) }
func LLMCallTimeout() string     { return viper.GetString(KeyLLMCallTimeout) }
func MigrationsDir() string      { return viper.GetString(KeyMigrationsDir) }
func AutoMigrate() bool          { return viper.GetBool(KeyAutoMigrate) }
func HistoryDefaultLimit() int   { return viper.GetInt(KeyHistoryLimit) }
func DBDebug() bool              { return viper.GetBool(KeyDBDebug) }
