package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("UE_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("UE_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("UE_LISTEN")
}

func GetPort() string {
	port := os.Getenv("UE_PORT")
	if port == "" {
		port = "8080"
	}
	return port
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("UE_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetUploadFolderPath() string {
	uploadFolderPath := os.Getenv("UE_UPLOAD_FOLDER")
	if uploadFolderPath == "" {
		uploadFolderPath = "data/uploads"
	}
	return uploadFolderPath
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("UE_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "data/log"
	}
	return logFolderPath
}

// GetSessionSecret returns the cookie-store secret. Empty means the caller
// should generate a one-off secret for this process.
func GetSessionSecret() string {
	return os.Getenv("UE_SESSION_SECRET")
}

func GetSessionMaxAge() string {
	maxAge := os.Getenv("UE_SESSION_MAX_AGE")
	if maxAge == "" {
		maxAge = "60"
	}
	return maxAge
}

// GetPublicBaseURL is the externally visible URL of the app, used when
// rendering share links and QR codes.
func GetPublicBaseURL() string {
	base := os.Getenv("UE_PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:" + GetPort()
	}
	return strings.TrimRight(base, "/")
}
