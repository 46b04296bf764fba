package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Set at build time with -ldflags "-X".
var (
	AppVersion string
	GitCommit  string
	BuildDate  string
)

type Version struct {
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
	AppName    string `json:"app_name"`
	BuildDate  string `json:"build_date"`
	GitCommit  string `json:"git_commit"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	BuildEnv   string `json:"build_env"`
}

var currentVersion Version

func init() {
	appVersion := AppVersion
	if appVersion == "" {
		appVersion = getEnv("APP_VERSION", "1.0.0")
	}

	apiVersion := "v1"
	if parts := strings.Split(appVersion, "."); len(parts) > 0 && parts[0] != "" {
		apiVersion = "v" + parts[0]
	}

	gitCommit := GitCommit
	if gitCommit == "" {
		gitCommit = getEnv("GIT_COMMIT", "unknown")
	}

	buildDate := BuildDate
	if buildDate == "" {
		buildDate = getEnv("BUILD_DATE", time.Now().Format(time.RFC3339))
	}

	currentVersion = Version{
		Version:    appVersion,
		APIVersion: apiVersion,
		AppName:    getEnv("APP_NAME", "PeaceConnect"),
		BuildDate:  buildDate,
		GitCommit:  gitCommit,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		BuildEnv:   getEnv("BUILD_ENV", "development"),
	}
}

func GetVersion() Version {
	return currentVersion
}

// ShortVersionString returns e.g. "PeaceConnect v1.0.0 (development)".
func ShortVersionString() string {
	v := GetVersion()
	return fmt.Sprintf("%s v%s (%s)", v.AppName, v.Version, v.BuildEnv)
}

func IsDevelopment() bool {
	return currentVersion.BuildEnv == "development"
}

func GetAPIVersion() string {
	return currentVersion.APIVersion
}
