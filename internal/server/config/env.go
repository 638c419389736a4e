package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv loads an optional .env file from the working directory and then
// overlays every recognised variable that is set. Variables already present in
// the process environment win over the .env file.
//
//	HTTP_ADDR, DATABASE_URL, SECRET_KEY, SESSION_TTL (Go duration),
//	OPENAI_API_KEY, OPENAI_BASE_URL, STT_MODEL, TTS_MODEL, TTS_VOICE,
//	TRANSLATE_BASE_URL, LISTEN_TIMEOUT, REQUEST_TIMEOUT (Go durations),
//	LOGIN_RATE_LIMIT (int), LOG_FORMAT,
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//
// Malformed durations and integers are ignored.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	setString(&config.DatabaseDSN, "DATABASE_URL")
	setString(&config.SecretKey, "SECRET_KEY")
	setDuration(&config.SessionValidityDuration, "SESSION_TTL")
	setString(&config.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&config.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&config.STTModel, "STT_MODEL")
	setString(&config.TTSModel, "TTS_MODEL")
	setString(&config.TTSVoice, "TTS_VOICE")
	setString(&config.TranslateBaseURL, "TRANSLATE_BASE_URL")
	setDuration(&config.ListenTimeout, "LISTEN_TIMEOUT")
	setDuration(&config.RequestTimeout, "REQUEST_TIMEOUT")
	setInt(&config.LoginRateLimit, "LOGIN_RATE_LIMIT")
	setString(&config.LogFormat, "LOG_FORMAT")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
