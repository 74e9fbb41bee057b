package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"teamforge/internal/config"
	"teamforge/internal/types"
)

// fakeService answers the endpoints the headless commands use and records
// the last request.
type fakeService struct {
	lastPath  string
	lastQuery string
	lastBody  map[string]any
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lastPath = r.URL.Path
	f.lastQuery = r.URL.RawQuery
	f.lastBody = nil
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &f.lastBody)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/heroes":
		_, _ = io.WriteString(w, `{"heroes":{"刘备":{"阵营":"蜀","统御":95,"标签":["仁德"]},"曹操":{"阵营":"魏"}},"page":1,"size":20,"total_pages":3,"count":42}`)
	case "/api/skills":
		_, _ = io.WriteString(w, `{"skills":{},"page":1,"size":20,"total_pages":0,"count":0}`)
	case "/api/recommend":
		_, _ = io.WriteString(w, `{"count":1,"teams":[{"score":91.26,"members":["刘备","关羽","张飞"]}]}`)
	case "/api/synergy":
		_, _ = io.WriteString(w, `{"synergy_score":80,"synergy_analysis":{"role_balance":"balanced","faction_bonus":{"蜀":3}}}`)
	case "/api/health":
		_, _ = io.WriteString(w, `{"status":"ok","message":"ready"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"no route"}`)
	}
}

func newFakeService(t *testing.T) (*fakeService, string) {
	t.Helper()
	svc := &fakeService{}
	server := httptest.NewServer(svc)
	t.Cleanup(server.Close)
	return svc, server.URL + "/api"
}

// execute runs the root command with a private config path and returns
// what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TEAMFORGE_API_URL", "")
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// A later --config in args wins over this one.
	args = append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	verbose, configPath, apiURL = false, "", ""
	heroesFlags = listFlags{page: 1}
	skillsFlags = listFlags{page: 1}
	recommendFlags = types.DefaultTeamConstraints()
	skipDamageCheck = false
	synergyLevel = types.DefaultTargetLevel
	forceInit = false
}

func TestHeroesCmd(t *testing.T) {
	svc, url := newFakeService(t)

	out, err := execute(t, "--api-url", url, "heroes", "--camp", "蜀", "--page", "2")
	require.NoError(t, err)

	assert.Equal(t, "/api/heroes", svc.lastPath)
	assert.Contains(t, svc.lastQuery, "page=2")
	assert.NotContains(t, svc.lastQuery, "search=")
	assert.Contains(t, out, "刘备")
	assert.Contains(t, out, "仁德")
	assert.Contains(t, out, "unknown", "missing fields use the placeholder")
	assert.Contains(t, out, "page 1 of 3, 42 records")
}

func TestSkillsCmd_Empty(t *testing.T) {
	_, url := newFakeService(t)

	out, err := execute(t, "--api-url", url, "skills", "--search", "火")
	require.NoError(t, err)
	assert.Contains(t, out, "No skills match.")
}

func TestRecommendCmd(t *testing.T) {
	svc, url := newFakeService(t)

	out, err := execute(t, "--api-url", url, "recommend", "--include", "刘备", "--count", "3", "--no-damage-check")
	require.NoError(t, err)

	assert.Equal(t, "刘备", svc.lastBody["required_hero"])
	assert.Equal(t, float64(3), svc.lastBody["count"])
	assert.Equal(t, false, svc.lastBody["damage_verification"])
	_, sent := svc.lastBody["excluded_hero"]
	assert.False(t, sent, "empty constraint is left out")

	assert.Contains(t, out, "91.3")
	assert.Contains(t, out, "刘备, 关羽, 张飞")
}

func TestRecommendCmd_RejectsBadNumbers(t *testing.T) {
	_, url := newFakeService(t)
	_, err := execute(t, "--api-url", url, "recommend", "--level", "0")
	assert.Error(t, err)
}

func TestSynergyCmd(t *testing.T) {
	svc, url := newFakeService(t)

	out, err := execute(t, "--api-url", url, "synergy", "刘备", "关羽", "--level", "70")
	require.NoError(t, err)

	assert.Equal(t, []any{"刘备", "关羽"}, svc.lastBody["members"])
	assert.Equal(t, float64(70), svc.lastBody["level"])
	assert.Contains(t, out, "80.0")
	assert.Less(t, bytes.Index([]byte(out), []byte("Faction bonus")), bytes.Index([]byte(out), []byte("Role balance")))
}

func TestSynergyCmd_RequiresMembers(t *testing.T) {
	_, err := execute(t, "synergy")
	assert.Error(t, err)
}

func TestHealthCmd(t *testing.T) {
	_, url := newFakeService(t)

	out, err := execute(t, "--api-url", url, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "ok ready")
}

func TestHealthCmd_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/api"
	server.Close()

	_, err := execute(t, "--api-url", url, "health")
	assert.ErrorContains(t, err, "not healthy")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = execute(t, "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "--config", path, "--api-url", "http://example.test/api", "config", "show")
	require.NoError(t, err)

	var shown config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "http://example.test/api", shown.API.BaseURL)
	assert.Equal(t, 20, shown.Catalog.PageSize)
}

func TestInvalidConfigRejected(t *testing.T) {
	_, err := execute(t, "--api-url", "ftp://nowhere", "health")
	assert.ErrorContains(t, err, "invalid configuration")
}
