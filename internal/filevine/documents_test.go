package filevine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Documents", r.URL.Path)
		assert.Equal(t, "4242", r.URL.Query().Get("projectId"))

		_, _ = w.Write([]byte(`{
			"items": [
				{"documentId": {"native": 900}, "filename": "intake.pdf", "folderId": {"native": 1}},
				{"documentId": {"native": 901}, "filename": "xray.jpg", "folderId": {"native": 2}}
			]
		}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	docs, err := client.ListDocuments(context.Background(), 4242)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, int64(900), docs[0].ID.Int64())
	assert.Equal(t, "intake.pdf", docs[0].Filename)
	assert.Equal(t, int64(1), docs[0].FolderID.Int64())
	assert.Equal(t, int64(901), docs[1].ID.Int64())
	assert.Equal(t, int64(2), docs[1].FolderID.Int64())
}

func TestGetDocumentLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Documents/900/locator", r.URL.Path)
		_, _ = w.Write([]byte(`{"url": "https://cdn.example.com/blob?sig=abc"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	loc, err := client.GetDocumentLocator(context.Background(), 900)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/blob?sig=abc", loc.URL)
}

func TestGetDocumentLocator_EmptyURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"url": ""}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.GetDocumentLocator(context.Background(), 900)
	assert.ErrorIs(t, err, ErrNoLocatorURL)
}

func TestGetDocumentLocator_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.GetDocumentLocator(context.Background(), 900)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
