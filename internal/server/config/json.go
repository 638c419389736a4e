package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/polyglot/internal/flagx"
	"github.com/dmitrijs2005/polyglot/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only keys present in the
// file override earlier values, so a file may hold just the settings that differ.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	OpenAIAPIKey            *string         `json:"openai_api_key"`
	OpenAIBaseURL           *string         `json:"openai_base_url"`
	STTModel                *string         `json:"stt_model"`
	TTSModel                *string         `json:"tts_model"`
	TTSVoice                *string         `json:"tts_voice"`
	TranslateBaseURL        *string         `json:"translate_base_url"`
	ListenTimeout           *timex.Duration `json:"listen_timeout"`
	RequestTimeout          *timex.Duration `json:"request_timeout"`
	LoginRateLimit          *int            `json:"login_rate_limit"`
	LogFormat               *string         `json:"log_format"`
	S3RootUser              *string         `json:"s3_root_user"`
	S3RootPassword          *string         `json:"s3_root_password"`
	S3Bucket                *string         `json:"s3_bucket"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
}

// parseJson overlays values from the file named by -c/-config. Without the flag
// nothing is loaded. An unreadable file or invalid JSON panics: the server must
// not start on a config it could not read.
func parseJson(config *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.OpenAIAPIKey, c.OpenAIAPIKey)
	overlay(&config.OpenAIBaseURL, c.OpenAIBaseURL)
	overlay(&config.STTModel, c.STTModel)
	overlay(&config.TTSModel, c.TTSModel)
	overlay(&config.TTSVoice, c.TTSVoice)
	overlay(&config.TranslateBaseURL, c.TranslateBaseURL)
	overlay(&config.LoginRateLimit, c.LoginRateLimit)
	overlay(&config.LogFormat, c.LogFormat)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.ListenTimeout != nil {
		config.ListenTimeout = c.ListenTimeout.Duration
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
