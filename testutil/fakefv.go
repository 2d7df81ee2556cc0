// Package testutil provides a fake Filevine backend for E2E and
// integration tests. It depends only on stdlib so that E2E tests (which
// cannot import internal/) can use it.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// FakeToken is the bearer token the fake identity endpoint issues.
const FakeToken = "fake-e2e-access-token"

// FakeFolder is one folder in the fake project.
type FakeFolder struct {
	ID       int64
	Name     string
	ParentID int64 // 0 marks a root folder
}

// FakeDocument is one document in the fake project.
type FakeDocument struct {
	ID       int64
	Filename string
	FolderID int64 // 0 places the document at the project root
	Content  string
}

// FakeFilevine stands in for both the identity service and the API
// gateway on a single httptest server. It issues a static bearer token,
// serves folder and document listings for one project, and streams
// document content through locator URLs.
//
// Point both base_url and identity_url at Server.URL.
type FakeFilevine struct {
	Server *httptest.Server

	ProjectID int64
	UserID    int64
	OrgID     int64
	UserEmail string
	OrgName   string

	Folders   []FakeFolder
	Documents []FakeDocument

	// FailDownloads makes the first N content requests for each document
	// fail with 503, exercising the retry path.
	FailDownloads int

	// BrokenDocuments lists document ids whose content always returns 404.
	BrokenDocuments map[int64]bool

	mu           sync.Mutex
	tokenCalls   int
	locatorCalls int
	contentAuth  int
	failsServed  map[int64]int
}

// Start launches the fake server. Call Close when done.
func (f *FakeFilevine) Start() {
	f.failsServed = make(map[int64]int)
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
}

// Close shuts down the underlying server.
func (f *FakeFilevine) Close() {
	f.Server.Close()
}

// TokenCalls reports how many token exchanges were performed.
func (f *FakeFilevine) TokenCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.tokenCalls
}

// LocatorCalls reports how many locator fetches were performed.
func (f *FakeFilevine) LocatorCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.locatorCalls
}

// ContentAuthCount reports how many content requests carried an
// Authorization header. Locator URLs embed their own authorization, so a
// correct client sends none.
func (f *FakeFilevine) ContentAuthCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.contentAuth
}

func (f *FakeFilevine) handle(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/connect/token":
		f.handleToken(w, r)
	case path == "/utils/GetUserOrgsWithToken":
		f.handleUserOrgs(w, r)
	case path == "/Folders/list":
		f.handleFolders(w, r)
	case path == "/Documents":
		f.handleDocuments(w, r)
	case strings.HasPrefix(path, "/Documents/") && strings.HasSuffix(path, "/locator"):
		f.handleLocator(w, r)
	case strings.HasPrefix(path, "/content/"):
		f.handleContent(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeFilevine) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	if r.PostForm.Get("grant_type") != "personal_access_token" || r.PostForm.Get("token") == "" {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.tokenCalls++
	f.mu.Unlock()

	writeJSON(w, map[string]any{
		"access_token": FakeToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (f *FakeFilevine) handleUserOrgs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !f.authorized(w, r) {
		return
	}

	writeJSON(w, map[string]any{
		"user": map[string]any{
			"userId": envelope(f.UserID),
			"email":  f.UserEmail,
		},
		"orgs": []any{
			map[string]any{
				"orgId": envelope(f.OrgID),
				"name":  f.OrgName,
			},
		},
	})
}

func (f *FakeFilevine) handleFolders(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(w, r) {
		return
	}

	if !f.projectMatches(w, r) {
		return
	}

	items := make([]any, 0, len(f.Folders))
	for _, folder := range f.Folders {
		items = append(items, map[string]any{
			"folderId": envelope(folder.ID),
			"name":     folder.Name,
			"parentId": envelope(folder.ParentID),
		})
	}

	writeJSON(w, map[string]any{"items": items})
}

func (f *FakeFilevine) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(w, r) {
		return
	}

	if !f.projectMatches(w, r) {
		return
	}

	items := make([]any, 0, len(f.Documents))
	for _, doc := range f.Documents {
		items = append(items, map[string]any{
			"documentId": envelope(doc.ID),
			"filename":   doc.Filename,
			"folderId":   envelope(doc.FolderID),
		})
	}

	writeJSON(w, map[string]any{"items": items})
}

func (f *FakeFilevine) handleLocator(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(w, r) {
		return
	}

	idText := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/Documents/"), "/locator")

	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil || f.findDocument(id) == nil {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	f.locatorCalls++
	f.mu.Unlock()

	writeJSON(w, map[string]any{
		"url": f.Server.URL + "/content/" + idText + "?sig=e2e",
	})
}

func (f *FakeFilevine) handleContent(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "" {
		f.mu.Lock()
		f.contentAuth++
		f.mu.Unlock()
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/content/"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	doc := f.findDocument(id)
	if doc == nil || f.BrokenDocuments[id] {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	mustFail := f.failsServed[id] < f.FailDownloads
	if mustFail {
		f.failsServed[id]++
	}
	f.mu.Unlock()

	if mustFail {
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write([]byte(doc.Content))
}

func (f *FakeFilevine) findDocument(id int64) *FakeDocument {
	for i := range f.Documents {
		if f.Documents[i].ID == id {
			return &f.Documents[i]
		}
	}

	return nil
}

// authorized rejects requests that do not present the issued bearer token.
func (f *FakeFilevine) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+FakeToken {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return false
	}

	return true
}

func (f *FakeFilevine) projectMatches(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("projectId") != strconv.FormatInt(f.ProjectID, 10) {
		http.Error(w, `{"error":"unknown project"}`, http.StatusNotFound)
		return false
	}

	return true
}

// envelope wraps an id the way the API does, as {"native": n}. Zero ids
// become JSON null, matching absent parents and root-level documents.
func envelope(id int64) any {
	if id == 0 {
		return nil
	}

	return map[string]int64{"native": id}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	_ = json.NewEncoder(w).Encode(v)
}
