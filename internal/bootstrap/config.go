package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eleven-am/soda-stream/internal/notify"
	"github.com/eleven-am/soda-stream/internal/transcription"
	"github.com/joho/godotenv"
)

const (
	EngineNative = "native"
	EngineBridge = "bridge"
)

type Config struct {
	ChannelCount    int
	SampleRate      int
	APIKey          string
	ModelDir        string
	RecognitionMode string

	Engine          string
	BridgeURL       string
	BridgeTimeout   time.Duration
	ShutdownTimeout time.Duration

	AudioSource     string
	ChunkSize       int
	InputSampleRate int
	InboxSize       int
	DedupPartials   bool

	TranscriptDSN string
	StatusAddr    string

	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string
}

// LoadConfig reads the environment, after applying a .env file from the
// working directory when one exists. Variables already set win over the
// file.
func LoadConfig() *Config {
	_ = godotenv.Load()

	sampleRate := getEnvInt("SODA_SAMPLE_RATE", transcription.DefaultSampleRate)
	return &Config{
		ChannelCount:    getEnvInt("SODA_CHANNEL_COUNT", transcription.DefaultChannelCount),
		SampleRate:      sampleRate,
		APIKey:          getEnv("SODA_API_KEY", transcription.DefaultAPIKey),
		ModelDir:        getEnv("SODA_MODEL_DIR", transcription.DefaultModelDirectory),
		RecognitionMode: strings.ToLower(getEnv("SODA_RECOGNITION_MODE", "")),

		Engine:          strings.ToLower(getEnv("SODA_ENGINE", EngineNative)),
		BridgeURL:       getEnv("SODA_BRIDGE_URL", "ws://localhost:9090/soda"),
		BridgeTimeout:   getEnvDuration("SODA_BRIDGE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),

		AudioSource:     getEnv("AUDIO_SOURCE", "-"),
		ChunkSize:       getEnvInt("AUDIO_CHUNK_SIZE", transcription.DefaultChunkSize),
		InputSampleRate: getEnvInt("AUDIO_INPUT_RATE", sampleRate),
		InboxSize:       getEnvInt("INBOX_SIZE", transcription.DefaultInboxSize),
		DedupPartials:   getEnvBool("DEDUP_PARTIALS", false),

		TranscriptDSN: getEnv("TRANSCRIPT_DSN", ""),
		StatusAddr:    getEnv("STATUS_ADDR", ""),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisChannel:  getEnv("REDIS_CHANNEL", notify.DefaultChannel),
	}
}

// RecognizerOptions maps the configuration onto a recognizer.
func (c *Config) RecognizerOptions() transcription.Options {
	return transcription.Options{
		Session: transcription.SessionConfig{
			ChannelCount:    c.ChannelCount,
			SampleRate:      c.SampleRate,
			APIKey:          c.APIKey,
			ModelDirectory:  c.ModelDir,
			RecognitionMode: transcription.RecognitionMode(c.RecognitionMode),
		},
		ChunkSize:                 c.ChunkSize,
		InboxSize:                 c.InboxSize,
		InputSampleRate:           c.InputSampleRate,
		SuppressDuplicatePartials: c.DedupPartials,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
