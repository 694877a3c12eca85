package config

import (
	"time"

	"lgs-predict/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Gemini     GeminiConfig
	Data       DataConfig
	Redis      RedisConfig
	Embedding  EmbeddingConfig
	Repository RepositoryConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
	Timeout     time.Duration
}

type DataConfig struct {
	CorpusFile    string
	GeneratedFile string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TrendTTL time.Duration
}

type EmbeddingConfig struct {
	Source          string // "", "ollama" or "openai"
	OllamaServerURL string
	OllamaModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	TopK            int
}

type RepositoryConfig struct {
	Strict bool
}

// Load reads configuration from an optional .env file, an optional
// config.yaml and the environment. A missing Gemini API key or corpus file
// path is a startup configuration error, not recoverable at runtime.
func Load() (*Config, error) {
	// Original deployments keep the Gemini key in a .env file next to the
	// binary; absence is fine, the environment may carry it instead.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.top_p", 0.95)
	v.SetDefault("gemini.top_k", 40)
	v.SetDefault("gemini.max_tokens", 8192)
	v.SetDefault("gemini.timeout", 60)
	v.SetDefault("data.corpus_file", "data.json")
	v.SetDefault("data.generated_file", "data/uretilen_sorular.json")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.trend_ttl", 3600)
	v.SetDefault("embedding.top_k", 5)
	v.SetDefault("embedding.ollama_model", "nomic-embed-text")
	v.SetDefault("embedding.openai_model", "text-embedding-ada-002")

	v.AutomaticEnv()
	_ = v.BindEnv("gemini.api_key", "GEMINI_API_KEY", "Gemini_API_Key")
	_ = v.BindEnv("gemini.model", "GEMINI_MODEL")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("data.corpus_file", "CORPUS_FILE")
	_ = v.BindEnv("data.generated_file", "GENERATED_FILE")
	_ = v.BindEnv("redis.address", "REDIS_ADDRESS")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("embedding.source", "EMBEDDING_SOURCE")
	_ = v.BindEnv("embedding.ollama_server_url", "OLLAMA_SERVER_URL")
	_ = v.BindEnv("embedding.openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
	_ = v.BindEnv("logger.env", "ENV")
	_ = v.BindEnv("repository.strict", "REPOSITORY_STRICT")

	// config.yaml is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, domain.NewError(domain.CodeConfiguration, "failed to read config file", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Gemini: GeminiConfig{
			APIKey:      v.GetString("gemini.api_key"),
			Model:       v.GetString("gemini.model"),
			Temperature: v.GetFloat64("gemini.temperature"),
			TopP:        v.GetFloat64("gemini.top_p"),
			TopK:        v.GetInt("gemini.top_k"),
			MaxTokens:   v.GetInt("gemini.max_tokens"),
			Timeout:     time.Duration(v.GetInt("gemini.timeout")) * time.Second,
		},
		Data: DataConfig{
			CorpusFile:    v.GetString("data.corpus_file"),
			GeneratedFile: v.GetString("data.generated_file"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TrendTTL: time.Duration(v.GetInt("redis.trend_ttl")) * time.Second,
		},
		Embedding: EmbeddingConfig{
			Source:          v.GetString("embedding.source"),
			OllamaServerURL: v.GetString("embedding.ollama_server_url"),
			OllamaModel:     v.GetString("embedding.ollama_model"),
			OpenAIAPIKey:    v.GetString("embedding.openai_api_key"),
			OpenAIModel:     v.GetString("embedding.openai_model"),
			TopK:            v.GetInt("embedding.top_k"),
		},
		Repository: RepositoryConfig{
			Strict: v.GetBool("repository.strict"),
		},
	}

	if cfg.Gemini.APIKey == "" {
		return nil, domain.NewConfigurationError(
			"Gemini API anahtarı yapılandırılmamış; .env dosyasında veya ortamda GEMINI_API_KEY değerini ayarlayın")
	}
	if cfg.Data.CorpusFile == "" {
		return nil, domain.NewConfigurationError("corpus data file path is empty")
	}

	return cfg, nil
}
