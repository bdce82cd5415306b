package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"snapvault/pkg/client"

	"github.com/stretchr/testify/require"
)

// fakeBackend implements just enough of the API plus a /storage/ prefix that
// stands in for the object store's presigned PUT target.
type fakeBackend struct {
	mu      sync.Mutex
	objects map[string][]byte
	server  *httptest.Server

	failPUT    bool
	failNotify bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{objects: map[string][]byte{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"token": "test-token"})
	})
	mux.HandleFunc("POST /media/upload-url", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FileName string `json:"fileName"`
			MimeType string `json:"mimeType"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !strings.HasPrefix(req.MimeType, "image/") && !strings.HasPrefix(req.MimeType, "video/") {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "mime type not allowed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": b.server.URL + "/storage/" + req.FileName})
	})
	mux.HandleFunc("PUT /storage/{key}", func(w http.ResponseWriter, r *http.Request) {
		if b.failPUT {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.objects[r.PathValue("key")] = data
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /media", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /media/notify-upload", func(w http.ResponseWriter, r *http.Request) {
		if b.failNotify {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
			return
		}
		var req struct {
			FileName         string `json:"fileName"`
			MimeType         string `json:"mimeType"`
			OriginalFilename string `json:"originalFilename"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		_, ok := b.objects[req.FileName]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "file not uploaded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 1, "file_name": req.FileName, "original_filename": req.OriginalFilename,
			"likes": 0, "created_by": "alice", "deletable": true,
		})
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestUploadWalksPhases(t *testing.T) {
	backend := newFakeBackend(t)
	c := client.New(backend.server.URL)

	var phases []client.Phase
	c.OnPhase = func(p client.Phase) { phases = append(phases, p) }

	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "alice", "Abc12345!"))

	item, err := c.Upload(ctx, []byte("png-bytes"), "image/png", "beach.png")
	require.NoError(t, err)
	require.Equal(t, int64(1), item.ID)
	require.Equal(t, "beach.png", item.OriginalFilename)

	require.Equal(t, []client.Phase{
		client.PhaseRequestingURL,
		client.PhaseUploading,
		client.PhaseNotifying,
		client.PhaseDone,
	}, phases)

	// The bytes went straight to storage, keyed by the random identifier.
	require.Len(t, backend.objects, 1)
	for _, data := range backend.objects {
		require.Equal(t, []byte("png-bytes"), data)
	}
}

func TestUploadFailsOnRejectedMime(t *testing.T) {
	backend := newFakeBackend(t)
	c := client.New(backend.server.URL)

	var phases []client.Phase
	c.OnPhase = func(p client.Phase) { phases = append(phases, p) }

	_, err := c.Upload(context.Background(), []byte("zip"), "application/zip", "a.zip")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "mime type not allowed", apiErr.Message)

	require.Equal(t, client.PhaseFailed, phases[len(phases)-1])
	require.Empty(t, backend.objects, "nothing may reach storage after a rejected presign")
}

func TestUploadFailsOnStorageRejection(t *testing.T) {
	backend := newFakeBackend(t)
	backend.failPUT = true
	c := client.New(backend.server.URL)

	var phases []client.Phase
	c.OnPhase = func(p client.Phase) { phases = append(phases, p) }

	_, err := c.Upload(context.Background(), []byte("png"), "image/png", "a.png")
	require.Error(t, err)
	require.Equal(t, []client.Phase{
		client.PhaseRequestingURL,
		client.PhaseUploading,
		client.PhaseFailed,
	}, phases)
}

func TestGalleryEmptyPage(t *testing.T) {
	backend := newFakeBackend(t)
	c := client.New(backend.server.URL)

	page, err := c.Gallery(context.Background(), 1, 10, "", "")
	require.NoError(t, err)
	require.Empty(t, page.Data)
	require.Zero(t, page.Pagination.TotalItems)
}

func TestUploadTerminalOnNotifyFailure(t *testing.T) {
	backend := newFakeBackend(t)
	backend.failNotify = true
	c := client.New(backend.server.URL)

	_, err := c.Upload(context.Background(), []byte("png"), "image/png", "a.png")
	require.Error(t, err)

	// The blob landed but the attempt is over: no retry, no cleanup.
	require.Len(t, backend.objects, 1)
}
