package commands_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentsAPI(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/demo/contents", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"name": "README.md", "type": "file", "size": 2048, "html_url": "https://github.com/octocat/demo/blob/main/README.md", "sha": "3d21ec53a331a6f037a91c368710b99387d012c1"},
			{"name": "docs", "type": "dir", "size": 0, "html_url": "https://github.com/octocat/demo/tree/main/docs", "sha": "a84d88e7554fc1fa21bcbc4efae3c782a70d2b9d"},
		})
	})
	mux.HandleFunc("GET /repos/octocat/empty/contents", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "This repository is empty."})
	})
	mux.HandleFunc("GET /repos/octocat/demo/contents/{path...}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("path") {
		case "docs/guide.md":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"type":     "file",
				"encoding": "base64",
				"content":  base64.StdEncoding.EncodeToString([]byte("# Guide\n\nHello!\n")),
			})
		case "docs":
			writeJSON(t, w, http.StatusOK, []map[string]any{{"name": "guide.md", "type": "file"}})
		default:
			writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		}
	})
	return newAPI(t, mux)
}

func TestContentsCmd_Table(t *testing.T) {
	t.Parallel()

	r := runCLI(t, "contents", "demo", "--config", writeConfig(t, contentsAPI(t), ""))

	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "README.md")
	assert.Contains(t, r.stdout, "2.0 kB")
	assert.Contains(t, r.stdout, "3d21ec5")
	assert.Contains(t, r.stdout, "docs")
}

func TestContentsCmd_EmptyRepository(t *testing.T) {
	t.Parallel()

	r := runCLI(t, "contents", "empty", "-o", "json", "--config", writeConfig(t, contentsAPI(t), ""))

	require.Equal(t, 0, r.code, r.stderr)
	env := r.envelope(t)
	assert.True(t, env.Success)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestContentsCmd_MissingRepository(t *testing.T) {
	t.Parallel()

	r := runCLI(t, "contents", "nope", "-o", "json", "--config", writeConfig(t, contentsAPI(t), ""))

	assert.Equal(t, 1, r.code)
	env := r.envelope(t)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestCatCmd(t *testing.T) {
	t.Parallel()

	cfgFile := writeConfig(t, contentsAPI(t), "")

	t.Run("text prints the raw content", func(t *testing.T) {
		t.Parallel()

		r := runCLI(t, "cat", "demo", "docs/guide.md", "--config", cfgFile)

		require.Equal(t, 0, r.code, r.stderr)
		assert.Equal(t, "# Guide\n\nHello!\n", r.stdout)
	})

	t.Run("json wraps path and content", func(t *testing.T) {
		t.Parallel()

		r := runCLI(t, "cat", "demo", "docs/guide.md", "-o", "json", "--config", cfgFile)

		require.Equal(t, 0, r.code, r.stderr)
		var data map[string]string
		require.NoError(t, json.Unmarshal(r.envelope(t).Data, &data))
		assert.Equal(t, map[string]string{"path": "docs/guide.md", "content": "# Guide\n\nHello!\n"}, data)
	})

	t.Run("directory is a decoding error", func(t *testing.T) {
		t.Parallel()

		r := runCLI(t, "cat", "demo", "docs", "-o", "json", "--config", cfgFile)

		assert.Equal(t, 1, r.code)
		env := r.envelope(t)
		require.NotNil(t, env.Error)
		assert.Equal(t, "DECODING_ERROR", env.Error.Code)
	})
}

// putRecorder records file write requests.
type putRecorder struct {
	mu     sync.Mutex
	bodies []map[string]any
	paths  []string
}

func (p *putRecorder) snapshot() ([]string, []map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...), append([]map[string]any(nil), p.bodies...)
}

func writeAPI(t *testing.T, recorder *putRecorder) string {
	t.Helper()

	record := func(r *http.Request) map[string]any {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		recorder.mu.Lock()
		defer recorder.mu.Unlock()
		recorder.paths = append(recorder.paths, r.Method+" "+r.PathValue("path"))
		recorder.bodies = append(recorder.bodies, body)
		return body
	}

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /repos/octocat/demo/contents/{path...}", func(w http.ResponseWriter, r *http.Request) {
		body := record(r)
		if sha, ok := body["sha"]; ok && sha != "current-sha" {
			writeJSON(t, w, http.StatusConflict, map[string]string{"message": "README.md does not match current-sha"})
			return
		}
		writeJSON(t, w, http.StatusCreated, map[string]any{"content": map[string]string{"sha": "new-sha"}})
	})
	mux.HandleFunc("DELETE /repos/octocat/demo/contents/{path...}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(t, w, http.StatusOK, map[string]any{"content": nil})
	})
	return newAPI(t, mux)
}

func TestPutCmd_Content(t *testing.T) {
	t.Parallel()

	var recorder putRecorder
	cfgFile := writeConfig(t, writeAPI(t, &recorder), "")

	r := runCLI(t, "put", "demo", "docs/notes.md", "--content", "hello", "-m", "Add notes", "--config", cfgFile)

	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "new-sha\n", r.stdout)

	paths, bodies := recorder.snapshot()
	require.Len(t, bodies, 1)
	assert.Equal(t, []string{"PUT docs/notes.md"}, paths)
	assert.Equal(t, "Add notes", bodies[0]["message"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hello")), bodies[0]["content"])
	assert.NotContains(t, bodies[0], "sha")
}

func TestPutCmd_File(t *testing.T) {
	t.Parallel()

	var recorder putRecorder
	cfgFile := writeConfig(t, writeAPI(t, &recorder), "")
	local := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(local, []byte("# Demo\n"), 0o600))

	r := runCLI(t, "put", "demo", "README.md", "-f", local, "-m", "Update README", "--sha", "current-sha",
		"-o", "json", "--config", cfgFile)

	require.Equal(t, 0, r.code, r.stderr)
	var data map[string]string
	require.NoError(t, json.Unmarshal(r.envelope(t).Data, &data))
	assert.Equal(t, "new-sha", data["sha"])

	_, bodies := recorder.snapshot()
	require.Len(t, bodies, 1)
	assert.Equal(t, "current-sha", bodies[0]["sha"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("# Demo\n")), bodies[0]["content"])
}

func TestPutCmd_Conflict(t *testing.T) {
	t.Parallel()

	var recorder putRecorder
	cfgFile := writeConfig(t, writeAPI(t, &recorder), "")

	r := runCLI(t, "put", "demo", "README.md", "--content", "x", "-m", "m", "--sha", "stale", "--config", cfgFile)

	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Error: README.md does not match current-sha")
}

func TestPutCmd_InvalidArguments(t *testing.T) {
	t.Parallel()

	var recorder putRecorder
	cfgFile := writeConfig(t, writeAPI(t, &recorder), "")

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{
			name:   "no content",
			args:   []string{"put", "demo", "a.txt", "-m", "msg"},
			errMsg: "exactly one of --content or --file is required",
		},
		{
			name:   "both content and file",
			args:   []string{"put", "demo", "a.txt", "--content", "x", "-f", "a.txt", "-m", "msg"},
			errMsg: "exactly one of --content or --file is required",
		},
		{
			name:   "no message",
			args:   []string{"put", "demo", "a.txt", "--content", "x"},
			errMsg: "a commit message is required",
		},
		{
			name:   "unreadable file",
			args:   []string{"put", "demo", "a.txt", "-f", filepath.Join(t.TempDir(), "missing"), "-m", "msg"},
			errMsg: "unable to read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, append(tt.args, "-o", "json", "--config", cfgFile)...)

			assert.Equal(t, 1, r.code)
			env := r.envelope(t)
			require.NotNil(t, env.Error)
			assert.Equal(t, "INVALID_ARGUMENT", env.Error.Code)
			assert.Contains(t, env.Error.Message, tt.errMsg)
		})
	}

	_, bodies := recorder.snapshot()
	assert.Empty(t, bodies, "invalid input must not reach the API")
}

func TestPutCmd_EmptyContentCreatesEmptyFile(t *testing.T) {
	t.Parallel()

	var recorder putRecorder
	cfgFile := writeConfig(t, writeAPI(t, &recorder), "")

	r := runCLI(t, "put", "demo", ".keep", "--content", "", "-m", "Keep folder", "--config", cfgFile)

	require.Equal(t, 0, r.code, r.stderr)
	paths, _ := recorder.snapshot()
	assert.Equal(t, []string{"PUT .keep"}, paths)
}

func TestRmCmd(t *testing.T) {
	t.Parallel()

	var recorder putRecorder
	cfgFile := writeConfig(t, writeAPI(t, &recorder), "")

	r := runCLI(t, "rm", "demo", "docs/old.md", "-m", "Remove old doc", "--sha", "abc123", "--config", cfgFile)

	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "docs/old.md has been deleted.\n", r.stdout)

	paths, bodies := recorder.snapshot()
	assert.Equal(t, []string{"DELETE docs/old.md"}, paths)
	assert.Equal(t, "abc123", bodies[0]["sha"])
	assert.Equal(t, "Remove old doc", bodies[0]["message"])
}

func TestRmCmd_RequiresSHA(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /repos/octocat/demo/contents/{path...}", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	cfgFile := writeConfig(t, newAPI(t, mux), "")

	r := runCLI(t, "rm", "demo", "README.md", "-m", "Remove", "-o", "json", "--config", cfgFile)

	assert.Equal(t, 1, r.code)
	env := r.envelope(t)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_ARGUMENT", env.Error.Code)
	assert.Zero(t, calls.Load())
}
