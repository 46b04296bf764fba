package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"peaceconnect_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	content string
	err     error
}

func (f fakeSource) GetConfig(dataId, group string) (string, error) {
	return f.content, f.err
}

func TestInitializeConfigDefaults(t *testing.T) {
	cfg := initializeConfig()

	assert.Equal(t, "index.html", cfg.Submission.RedirectURL)
	assert.Equal(t, 2000*time.Millisecond, cfg.Submission.RedirectDelay)
	assert.Equal(t, 1000*time.Millisecond, cfg.Suggestion.Latency)
	assert.False(t, cfg.EnableNacos)
}

func TestInitializeConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SUBMISSION_REDIRECT_DELAY", "500")
	t.Setenv("SUGGESTION_LATENCY", "250ms")
	t.Setenv("REDIS_ENABLED", "true")

	cfg := initializeConfig()

	assert.Equal(t, uint64(9090), cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 500*time.Millisecond, cfg.Submission.RedirectDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.Suggestion.Latency)
	assert.True(t, cfg.Redis.Enabled)
}

func TestGetEnvFallsBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.True(t, getEnvAsBool("X_BOOL", true))
	assert.Equal(t, time.Second, getEnvAsDuration("X_DUR", time.Second))
}

func TestLoadFileOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := `
server:
  port: 7000
submission:
  redirect_url: merci.html
  redirect_delay: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg := initializeConfig()
	cfg.Database.Name = "kept"
	require.NoError(t, loadFile(cfg, path))

	assert.Equal(t, uint64(7000), cfg.Server.Port)
	assert.Equal(t, "merci.html", cfg.Submission.RedirectURL)
	assert.Equal(t, 3*time.Second, cfg.Submission.RedirectDelay)
	assert.Equal(t, "kept", cfg.Database.Name)
}

func TestLoadFileMissing(t *testing.T) {
	err := loadFile(initializeConfig(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseRemoteJSONWithComments(t *testing.T) {
	content := `{
  // database
  "DB_HOST": "mysql.svc",
  "DB_PORT": 3307,
  /* endpoint */
  "SUBMISSION_ENDPOINT": "http://api.local/api/help-request",
}`
	remote, err := parseRemote(content)
	require.NoError(t, err)

	assert.Equal(t, "mysql.svc", remote.DBHost)
	assert.Equal(t, 3307, remote.DBPort)
	assert.Equal(t, "http://api.local/api/help-request", remote.SubmissionEndpoint)
}

func TestParseRemoteYAML(t *testing.T) {
	remote, err := parseRemote("DB_NAME: peace\nREDIS_HOST: cache\n")
	require.NoError(t, err)

	assert.Equal(t, "peace", remote.DBName)
	assert.Equal(t, "cache", remote.RedisHost)
}

func TestLoadRemoteAppliesValues(t *testing.T) {
	cfg := initializeConfig()
	src := fakeSource{content: `{"PORT":"8181","DB_HOST":"localhost","REDIS_PORT":"6380","SUGGESTION_LATENCY_MS":10}`}

	loadRemote(cfg, src, logger.NewNop())

	assert.Equal(t, uint64(8181), cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Millisecond, cfg.Suggestion.Latency)
}

func TestLoadRemoteKeepsLocalOnFailure(t *testing.T) {
	cfg := initializeConfig()
	before := *cfg

	loadRemote(cfg, fakeSource{err: errors.New("connection refused")}, logger.NewNop())
	assert.Equal(t, before, *cfg)

	loadRemote(cfg, fakeSource{content: "[: not valid"}, logger.NewNop())
	assert.Equal(t, before, *cfg)
}

func TestVersion(t *testing.T) {
	v := GetVersion()
	assert.NotEmpty(t, v.AppName)
	assert.Contains(t, ShortVersionString(), v.Version)
	assert.Equal(t, v.APIVersion, GetAPIVersion())
}
