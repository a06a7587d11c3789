package e2e

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "sk-test-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"e2","description":"Smoke","taskId":"t1","timeInterval":{"start":"2022-10-01T13:00:00Z","end":"2022-10-01T15:00:00Z"}},
			{"id":"e1","description":"Smoke","taskId":"t1","timeInterval":{"start":"2022-10-01T08:00:00Z","end":"2022-10-01T12:00:00Z"}}
		]`))
	}))
	t.Cleanup(server.Close)

	env := []string{
		"CTS_SECRETS_BACKEND=file",
		"CTS_EXPORT_TIMEZONE=UTC",
	}

	for _, setting := range [][]string{
		{"clockify.base_url", server.URL},
		{"clockify.workspace_id", "ws-1"},
		{"clockify.user_id", "user-1"},
	} {
		_, stderr, err := runCTS(t, binaryPath, home, env, "config", "set", setting[0], setting[1])
		require.NoError(t, err, "stderr: %s", stderr)
	}

	_, stderr, err := runCTS(t, binaryPath, home, env, "auth", "set", "--api-key", "sk-test-123")
	require.NoError(t, err, "stderr: %s", stderr)

	output := filepath.Join(home, "october.csv")
	_, stderr, err = runCTS(t, binaryPath, home, env, "export", "--month", "2022-10", "--output", output)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stderr, "Wrote 1 rows from 2 entries")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "date,start,end,break,description\n01.10.22,08:00,15:00,1:00,Smoke\n", string(data))
}

func TestSmokeVersion(t *testing.T) {
	binaryPath := buildBinary(t)

	stdout, stderr, err := runCTS(t, binaryPath, t.TempDir(), nil, "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.NotEmpty(t, stdout)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "cts-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/cts")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build cts binary: %s", string(output))
	return binaryPath
}

func runCTS(t *testing.T, binaryPath, home string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)
	cmd.Env = append(cmd.Env, env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
