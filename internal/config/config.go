package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Gemini    GeminiConfig
	Prompts   PromptsConfig
	Speech    SpeechConfig
	TTS       TTSConfig
	Storage   StorageConfig
	Log       LogConfig
	Interview InterviewConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type PromptsConfig struct {
	Path string
}

type SpeechConfig struct {
	SampleRateHertz int
	DefaultLanguage string
}

type TTSConfig struct {
	AllowedVoices []string
	DefaultVoice  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type LogConfig struct {
	Level    string
	Format   string
	EventDir string
}

type InterviewConfig struct {
	MaxFeedbackCount int
	ProviderTimeout  time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ai_interview"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Prompts: PromptsConfig{
			Path: getEnv("PROMPTS_PATH", "./prompts/interview_prompts.json"),
		},
		Speech: SpeechConfig{
			SampleRateHertz: getEnvAsInt("SPEECH_SAMPLE_RATE_HERTZ", 48000),
			DefaultLanguage: getEnv("SPEECH_DEFAULT_LANGUAGE", "en-US"),
		},
		TTS: TTSConfig{
			AllowedVoices: getEnvAsSlice("TTS_ALLOWED_VOICES", []string{
				"en-US-Neural2-C",
				"en-US-Neural2-D",
				"en-US-Neural2-F",
				"ja-JP-Neural2-B",
				"ja-JP-Neural2-C",
				"ja-JP-Neural2-D",
			}),
			DefaultVoice: getEnv("TTS_DEFAULT_VOICE", "en-US-Neural2-F"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Format:   getEnv("LOG_FORMAT", "pretty"),
			EventDir: getEnv("LOG_DIR", "./logs"),
		},
		Interview: InterviewConfig{
			MaxFeedbackCount: getEnvAsInt("MAX_FEEDBACK_COUNT", 3),
			ProviderTimeout:  getEnvAsDuration("PROVIDER_TIMEOUT", "60s"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
