package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Apollo   ApolloConfig
	Analyzer AnalyzerConfig
	Storage  StorageConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// ApolloConfig describes the LLM gateway: an OAuth client-credentials token
// endpoint plus an OpenAI-style chat completions endpoint behind it.
type ApolloConfig struct {
	TokenURL          string
	APIURL            string
	ClientID          string
	ClientSecret      string
	Model             string
	Temperature       float64
	MaxTokens         int
	TokenTimeout      time.Duration
	CompletionTimeout time.Duration
}

type AnalyzerConfig struct {
	Concurrency int
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Apollo: ApolloConfig{
			TokenURL:          getEnv("APOLLO_TOKEN_URL", ""),
			APIURL:            getEnv("APOLLO_API_URL", ""),
			ClientID:          getEnv("APOLLO_CLIENT_ID", ""),
			ClientSecret:      getEnv("APOLLO_CLIENT_SECRET", ""),
			Model:             getEnv("APOLLO_MODEL", "gpt-4.1"),
			Temperature:       getEnvAsFloat("APOLLO_TEMPERATURE", 0.2),
			MaxTokens:         getEnvAsInt("APOLLO_MAX_TOKENS", 4000),
			TokenTimeout:      getEnvAsDuration("APOLLO_TOKEN_TIMEOUT", "10s"),
			CompletionTimeout: getEnvAsDuration("APOLLO_COMPLETION_TIMEOUT", "90s"),
		},
		Analyzer: AnalyzerConfig{
			Concurrency: getEnvAsInt("ANALYZER_CONCURRENCY", 2),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
