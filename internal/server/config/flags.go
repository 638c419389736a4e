package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret
//	-t int      session validity, minutes
//	-k string   OpenAI API key
//	-o string   OpenAI base URL
//	-v string   TTS voice
//	-l string   translation service base URL
//	-w int      speech recognition timeout, seconds
//	-r int      signup/login attempts per minute per IP
//	-f string   log format (json, text, zap)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//
// os.Args is filtered with flagx.FilterArgs first so the -c/-config flag and
// console arguments do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-t", "-k", "-o", "-v", "-l", "-w", "-r", "-f", "-u", "-p", "-b", "-g", "-e",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	fs.StringVar(&config.OpenAIAPIKey, "k", config.OpenAIAPIKey, "OpenAI API key")
	fs.StringVar(&config.OpenAIBaseURL, "o", config.OpenAIBaseURL, "OpenAI base URL")
	fs.StringVar(&config.TTSVoice, "v", config.TTSVoice, "TTS voice")
	fs.StringVar(&config.TranslateBaseURL, "l", config.TranslateBaseURL, "translation service base URL")
	listenTimeout := fs.Int("w", int(config.ListenTimeout.Seconds()), "speech recognition timeout (in seconds)")
	fs.IntVar(&config.LoginRateLimit, "r", config.LoginRateLimit, "signup/login attempts per minute")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format: json, text or zap")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket for audio archive")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.ListenTimeout = time.Duration(*listenTimeout) * time.Second
}
