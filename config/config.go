package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS        = ""               // e.g. "example.com,example2.com"
	MYSQL_DSN          = ""               // MySQL will be used if this is set
	SQLITE_FILE        = "photoserver.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS       = "0.0.0.0:8080"
	TMP_DIR            = "/tmp" // Local staging area for S3-backed buckets
	DEFAULT_BUCKET_DIR = ""     // Used for creating the initial disk bucket
	DEBUG_MODE         = true
	JWT_SECRET         = "insecure-dev-secret" // Override in production
	SESSION_KEY        = "insecure-dev-session-key"
)

func init() {
	// Values from a .env file never override the real environment
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("JWT_SECRET", &JWT_SECRET)
	readEnvString("SESSION_KEY", &SESSION_KEY)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}
