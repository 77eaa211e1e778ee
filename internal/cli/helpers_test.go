package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/quentinproust/teamwork-cli/internal/config"
)

type createdEntry struct {
	TaskID string
	Entry  map[string]string
}

// fakeTeamwork serves the subset of the Teamwork API the commands use.
type fakeTeamwork struct {
	mu        sync.Mutex
	srv       *httptest.Server
	token     string
	projects  []map[string]any
	taskLists map[string][]map[string]any
	tasks     map[string][]map[string]any
	entries   []map[string]any
	failDates map[string]bool
	created   []createdEntry
	requests  int
}

func newFakeTeamwork(t *testing.T) *fakeTeamwork {
	t.Helper()
	f := &fakeTeamwork{
		token:     "test-token",
		taskLists: map[string][]map[string]any{},
		tasks:     map[string][]map[string]any{},
		failDates: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /me.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"person": map[string]any{"id": "7", "first-name": "Ada", "last-name": "Lovelace"}})
	})
	mux.HandleFunc("GET /projects.json", func(w http.ResponseWriter, r *http.Request) {
		search := strings.ToLower(r.URL.Query().Get("searchTerm"))
		var out []map[string]any
		for _, p := range f.projects {
			if strings.Contains(strings.ToLower(p["name"].(string)), search) {
				out = append(out, p)
			}
		}
		writeJSON(w, map[string]any{"projects": out})
	})
	mux.HandleFunc("GET /projects/{id}/tasklists.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"tasklists": f.taskLists[r.PathValue("id")]})
	})
	mux.HandleFunc("GET /tasklists/{id}/tasks.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"todo-items": f.tasks[r.PathValue("id")]})
	})
	mux.HandleFunc("GET /time_entries.json", func(w http.ResponseWriter, r *http.Request) {
		size, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || size <= 0 {
			size = 10
		}
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		lo := min((page-1)*size, len(f.entries))
		hi := min(lo+size, len(f.entries))
		writeJSON(w, map[string]any{"time-entries": f.entries[lo:hi]})
	})
	mux.HandleFunc("POST /tasks/{id}/time_entries.json", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Entry map[string]string `json:"time-entry"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failDates[body.Entry["date"]] {
			http.Error(w, `{"MESSAGE":"locked period"}`, http.StatusUnprocessableEntity)
			return
		}
		f.created = append(f.created, createdEntry{TaskID: r.PathValue("id"), Entry: body.Entry})
		writeJSON(w, map[string]any{"timeLogId": strconv.Itoa(1000 + len(f.created)), "STATUS": "OK"})
	})

	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		token := f.token
		f.mu.Unlock()
		if user, _, ok := r.BasicAuth(); !ok || user != token {
			http.Error(w, `{"MESSAGE":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeTeamwork) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// newTestDeps returns deps with an empty home directory pointed at api.
func newTestDeps(t *testing.T, api *fakeTeamwork, pk PromptKit) runDeps {
	t.Helper()
	env := map[string]string{}
	if api != nil {
		env["TEAMWORK_BASE_URL"] = api.srv.URL
	}
	return runDeps{
		homeDir: t.TempDir(),
		lookup:  envconfig.MapLookuper(env),
		now:     fixedNow,
		pk:      pk,
	}
}

// withCredentials stores credentials accepted by the fake API.
func withCredentials(t *testing.T, d runDeps) runDeps {
	t.Helper()
	cfg, err := config.Read(d.homeDir)
	require.NoError(t, err)
	cfg.Credentials = config.Credentials{CompanyID: "acme", Token: "test-token"}
	require.NoError(t, config.Write(d.homeDir, cfg))
	return d
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	out := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd, out
}
