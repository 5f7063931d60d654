package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const classesPayload = `{"data":{"getCourseClassesForUser":{"courseClasses":[
	{"id":"class-1","slugId":"cst-339-o500","name":"Programming in Java III","courseCode":"CST-339","stage":"CURRENT"}
]}}}`

// fakeHalo serves the identity, GraphQL, orchestrate and upload endpoints from one server.
type fakeHalo struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []string
	uploaded []byte
}

func newFakeHalo(t *testing.T) *fakeHalo {
	t.Helper()

	f := &fakeHalo{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/csrf", func(w http.ResponseWriter, _ *http.Request) {
		f.record("csrf")
		_, _ = io.WriteString(w, `{"csrfToken":"csrf-123"}`)
	})
	mux.HandleFunc("/api/auth/callback/tokens", func(w http.ResponseWriter, r *http.Request) {
		f.record("callback")
		http.SetCookie(w, &http.Cookie{Name: "__Secure-next-auth.session-token", Value: "long-lived", Path: "/"})
		http.Redirect(w, r, "/", http.StatusFound)
	})
	mux.HandleFunc("/api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		f.record("session")
		if cookie, err := r.Cookie("__Secure-next-auth.session-token"); err != nil || cookie.Value != "long-lived" {
			_, _ = io.WriteString(w, `{}`)
			return
		}
		_, _ = io.WriteString(w, `{"userId":"u1","username":"student","authToken":"A2","contextToken":"C2","expires":"2025-01-01"}`)
	})
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			OperationName string `json:"operationName"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		f.record(payload.OperationName)

		if r.Header.Get("Authorization") != "Bearer A1" && r.Header.Get("Authorization") != "Bearer A2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch payload.OperationName {
		case "getCourseClassesForUser":
			_, _ = io.WriteString(w, classesPayload)
		case "BulkAssignmentResource":
			_, _ = io.WriteString(w, `{"data":{"bulkAddAssignmentSubmissionResource":{"id":"S1","status":"DRAFT","resources":[
				{"id":"SR1","uploadDate":"2025-01-01T10:00:00Z","resource":{"id":"R1","name":"essay.docx"}}
			]}}}`)
		case "AssignmentSubmission":
			_, _ = io.WriteString(w, `{"data":{"assignmentSubmission":null}}`)
		case "CurrentClass":
			_, _ = io.WriteString(w, `{"data":{"currentClass":{"id":"class-1","slugId":"cst-339-o500","name":"Programming in Java III","courseCode":"CST-339","units":[
				{"title":"Topic 1","sequence":1,"current":true,"assessments":[
					{"id":"AX","title":"Essay 1","type":"ASSIGNMENT","points":100,"dueDate":"2025-01-12T06:59:59Z"}
				]}
			]}}}`)
		case "GradeOverview":
			_, _ = io.WriteString(w, `{"data":{"gradeOverview":[{"finalGrade":{"finalPoints":88,"gradeValue":"B+","isPublished":true,"maxPoints":100},
				"grades":[{"assessment":{"id":"AX","title":"Essay 1","points":100},"finalPoints":88,"status":"GRADED"}]}]}}`)
		default:
			t.Errorf("unexpected operation %q", payload.OperationName)
		}
	})
	mux.HandleFunc("/api/v1/orchestrate/generate-presigned-urls", func(w http.ResponseWriter, _ *http.Request) {
		f.record("generate-presigned-urls")
		_, _ = io.WriteString(w, `[{"resourceId":"R1","s3UploadUrl":"`+f.server.URL+`/upload/R1"}]`)
	})
	mux.HandleFunc("/api/v1/orchestrate/fileUploadStatus", func(w http.ResponseWriter, _ *http.Request) {
		f.record("fileUploadStatus")
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/upload/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		time.Sleep(200 * time.Millisecond)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		f.mu.Lock()
		f.uploaded = body
		f.mu.Unlock()
		f.record("upload")
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	t.Setenv("HALO_ENDPOINTS_IDENTITY", f.server.URL)
	t.Setenv("HALO_ENDPOINTS_GATEWAY", f.server.URL+"/graphql")
	t.Setenv("HALO_ENDPOINTS_ORCHESTRATE", f.server.URL)
	t.Setenv("HALO_LOG_LEVEL", "error")
	t.Setenv("HALO_AUTH_TOKEN", "")
	t.Setenv("HALO_CONTEXT_TOKEN", "")
	t.Setenv("HALO_TRANSACTION_ID", "")
	t.Setenv("HALO_CONFIG", "")
	return f
}

func (f *fakeHalo) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, name)
}

func (f *fakeHalo) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	newFakeHalo(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)

	stdout, _, err = executeCLI(t, t.TempDir(), "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "dev", info["version"])
	assert.Equal(t, runtime.Version(), info["goVersion"])
}

func TestTokensSetWritesCredentialFile(t *testing.T) {
	newFakeHalo(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "tokens", "set", "--auth-token", "A1", "--context-token", "C1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "halo session setup")

	doc := readCredentials(t, home)
	assert.Equal(t, "A1", doc["authToken"])
	assert.Equal(t, "C1", doc["contextToken"])
}

func TestTokensSetRequiresAuthToken(t *testing.T) {
	newFakeHalo(t)

	_, _, err := executeCLI(t, t.TempDir(), "tokens", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"auth-token\" not set")
}

func TestTokensCheckReportsValid(t *testing.T) {
	halo := newFakeHalo(t)
	home := t.TempDir()
	require.NoError(t, writeCredentials(home, `{"authToken":"A1","contextToken":"C1"}`))

	stdout, _, err := executeCLI(t, home, "tokens", "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tokens: valid")
	assert.Contains(t, stdout, "Found 1 class(es)")
	assert.Equal(t, []string{"getCourseClassesForUser"}, halo.calls())
}

func TestTokensCheckWithoutSessionReportsExpired(t *testing.T) {
	halo := newFakeHalo(t)
	home := t.TempDir()
	require.NoError(t, writeCredentials(home, `{"authToken":"stale","contextToken":"stale"}`))

	stdout, _, err := executeCLI(t, home, "tokens", "check", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokens are not valid")

	var validation map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &validation))
	assert.Equal(t, "expired", validation["status"])
	assert.Contains(t, validation["message"], "halo session setup")
	assert.NotContains(t, halo.calls(), "session")
}

func TestSessionSetupThenTokensAreRefreshedOnExpiry(t *testing.T) {
	halo := newFakeHalo(t)
	home := t.TempDir()
	require.NoError(t, writeCredentials(home, `{"authToken":"A1","contextToken":"C1"}`))

	stdout, _, err := executeCLI(t, home, "session", "setup")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Session created, expires 2025-01-01")

	doc := readCredentials(t, home)
	assert.Equal(t, "A2", doc["authToken"])
	assert.Equal(t, map[string]any{"__Secure-next-auth.session-token": "long-lived"}, doc["sessionCookies"])

	stdout, _, err = executeCLI(t, home, "tokens", "refresh")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tokens refreshed for student")
	assert.Equal(t, []string{"csrf", "callback", "session", "session"}, halo.calls())
}

func TestClassesListPersistsDirectory(t *testing.T) {
	newFakeHalo(t)
	home := t.TempDir()
	require.NoError(t, writeCredentials(home, `{"authToken":"A1","contextToken":"C1"}`))

	stdout, _, err := executeCLI(t, home, "classes", "list", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"slug": "cst-339-o500"`)

	directory, err := os.ReadFile(filepath.Join(home, ".halo", "classes.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(directory), "cst-339-o500")

	stdout, _, err = executeCLI(t, home, "classes", "list", "--cached")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CST-339  Programming in Java III")
}

func TestClassesAssignmentsListsAssessmentIDs(t *testing.T) {
	halo := newFakeHalo(t)
	home := t.TempDir()
	require.NoError(t, writeCredentials(home, `{"authToken":"A1","contextToken":"C1"}`))

	stdout, _, err := executeCLI(t, home, "classes", "assignments", "--class", "cst-339", "--json")
	require.NoError(t, err)

	var assignments struct {
		Slug  string `json:"slug"`
		Units []struct {
			Title       string `json:"title"`
			Assessments []struct {
				ID      string  `json:"id"`
				Points  float64 `json:"points"`
				DueDate string  `json:"dueDate"`
			} `json:"assessments"`
		} `json:"units"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &assignments))
	assert.Equal(t, "cst-339-o500", assignments.Slug)
	require.Len(t, assignments.Units, 1)
	require.Len(t, assignments.Units[0].Assessments, 1)
	assert.Equal(t, "AX", assignments.Units[0].Assessments[0].ID)
	assert.Equal(t, 100.0, assignments.Units[0].Assessments[0].Points)
	assert.Equal(t, "2025-01-12", assignments.Units[0].Assessments[0].DueDate)
	assert.Equal(t, []string{"getCourseClassesForUser", "CurrentClass"}, halo.calls())
}

func TestClassesGradesRendersSummary(t *testing.T) {
	newFakeHalo(t)
	home := t.TempDir()
	require.NoError(t, writeCredentials(home, `{"authToken":"A1","contextToken":"C1"}`))

	stdout, _, err := executeCLI(t, home, "classes", "grades", "--class", "cst-339")
	require.NoError(t, err)
	assert.Contains(t, stdout, "final grade: B+  88/100")
	assert.Contains(t, stdout, "Essay 1  88/100")
}

func TestClassesAssignmentsRequiresClass(t *testing.T) {
	newFakeHalo(t)

	_, _, err := executeCLI(t, t.TempDir(), "classes", "assignments")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "class" not set`)
}

func TestSubmissionAttachUploadsAndDoesNotSubmit(t *testing.T) {
	halo := newFakeHalo(t)
	home := t.TempDir()
	require.NoError(t, writeCredentials(home, `{"authToken":"A1","contextToken":"C1"}`))

	file := filepath.Join(t.TempDir(), "essay.docx")
	require.NoError(t, os.WriteFile(file, []byte("final essay"), 0o600))

	stdout, stderr, err := executeCLI(t, home,
		"submission", "attach",
		"--class", "cst-339",
		"--assessment", "AX",
		"--file", file,
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Uploading essay.docx to AX")
	assert.Contains(t, stderr, "essay.docx attached")
	assert.Contains(t, stdout, "Attached essay.docx")
	assert.Contains(t, stdout, "NOT submitted")

	assert.Equal(t, []string{
		"getCourseClassesForUser",
		"generate-presigned-urls",
		"upload",
		"BulkAssignmentResource",
		"fileUploadStatus",
	}, halo.calls())
	assert.Equal(t, "final essay", string(halo.uploaded))
}

func TestSubmissionSubmitRequiresConfirm(t *testing.T) {
	halo := newFakeHalo(t)
	home := t.TempDir()
	require.NoError(t, writeCredentials(home, `{"authToken":"A1","contextToken":"C1"}`))

	_, _, err := executeCLI(t, home, "submission", "submit", "--class", "CST-339", "--assessment", "AX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--confirm")
	assert.Empty(t, halo.calls())
}

func TestSubmissionUnknownClass(t *testing.T) {
	newFakeHalo(t)
	home := t.TempDir()
	require.NoError(t, writeCredentials(home, `{"authToken":"A1","contextToken":"C1"}`))

	_, _, err := executeCLI(t, home, "submission", "show", "--class", "BIO-999", "--assessment", "AX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class not found")
	assert.Contains(t, err.Error(), "halo classes list")
}

func TestRemovedCommandIsUnknown(t *testing.T) {
	newFakeHalo(t)

	_, _, err := executeCLI(t, t.TempDir(), "usage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"usage\"")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeCredentials(home, contents string) error {
	dir := filepath.Join(home, ".halo")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "credentials.json"), []byte(strings.TrimSpace(contents)), 0o600)
}

func readCredentials(t *testing.T, home string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(home, ".halo", "credentials.json"))
	require.NoError(t, err)

	doc := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}
