package diffapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/richdiff/richdiff/pkg/diffdb"
	"github.com/richdiff/richdiff/pkg/diffstorage"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	bdb, err := bbolt.Open(filepath.Join(t.TempDir(), "db.bolt"), 0o644, nil)
	require.NoError(t, err)
	t.Cleanup(func() { bdb.Close() })

	return &Server{
		PublicURL: "https://richdiff.example",
		DB:        &diffdb.DB{DB: bdb},
		Storage:   diffstorage.NewDBStorage(bdb, []byte("documents")),
	}
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	wri, req := httptest.NewRecorder(), httptest.NewRequest("POST", path, strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(wri, req)
	return wri
}

func TestPostDiffReturnsWireSchema(t *testing.T) {
	r := newServer(t).Router()

	wri := postJSON(t, r, "/diff", diffRequest{
		LeftText:  "The quick brown fox jumps over the lazy dog.",
		RightText: "The quick brown fox leaps over the lazy dog.",
	})
	require.Equal(t, http.StatusOK, wri.Code, wri.Body.String())
	assert.NotEmpty(t, wri.Header().Get("X-Diff-Id"))

	var pairs []map[string]any
	require.NoError(t, json.Unmarshal(wri.Body.Bytes(), &pairs))
	require.Len(t, pairs, 1)
	assert.Equal(t, "modified", pairs[0]["status"])
}

func TestPostDiffDeduplicatesByID(t *testing.T) {
	r := newServer(t).Router()
	req := diffRequest{LeftText: "a\n\nb", RightText: "a\n\nc"}

	wri1 := postJSON(t, r, "/diff", req)
	require.Equal(t, http.StatusOK, wri1.Code)
	id1 := wri1.Header().Get("X-Diff-Id")

	wri2 := postJSON(t, r, "/diff", req)
	require.Equal(t, http.StatusOK, wri2.Code)
	id2 := wri2.Header().Get("X-Diff-Id")

	assert.Equal(t, id1, id2)
	assert.JSONEq(t, wri1.Body.String(), wri2.Body.String())
}

func TestGetResultRefetchesByID(t *testing.T) {
	r := newServer(t).Router()
	wri := postJSON(t, r, "/diff", diffRequest{LeftText: "hello", RightText: "hallo"})
	require.Equal(t, http.StatusOK, wri.Code)
	id := wri.Header().Get("X-Diff-Id")

	get, getReq := httptest.NewRecorder(), httptest.NewRequest("GET", "/"+id, nil)
	r.ServeHTTP(get, getReq)
	require.Equal(t, http.StatusOK, get.Code)
	assert.JSONEq(t, wri.Body.String(), get.Body.String())
}

func TestGetResultUnknownIDIs404(t *testing.T) {
	r := newServer(t).Router()
	get, getReq := httptest.NewRecorder(), httptest.NewRequest("GET", "/zzzzzzzz", nil)
	r.ServeHTTP(get, getReq)
	assert.Equal(t, http.StatusNotFound, get.Code)
}

func TestPostDiffInline(t *testing.T) {
	r := newServer(t).Router()
	wri := postJSON(t, r, "/diff/inline", diffRequest{LeftText: "copy of reality", RightText: "collection of images"})
	require.Equal(t, http.StatusOK, wri.Code, wri.Body.String())

	var body struct {
		InlineDiff []map[string]any `json:"inline_diff"`
	}
	require.NoError(t, json.Unmarshal(wri.Body.Bytes(), &body))
	assert.NotEmpty(t, body.InlineDiff)
}

func TestPostDiffBadBodyIs400(t *testing.T) {
	r := newServer(t).Router()
	wri, req := httptest.NewRecorder(), httptest.NewRequest("POST", "/diff", io.NopCloser(strings.NewReader("{}")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(wri, req)
	assert.Equal(t, http.StatusBadRequest, wri.Code)
}

func TestPostDiffStrictLevel(t *testing.T) {
	r := newServer(t).Router()
	b, err := json.Marshal(diffRequest{LeftText: "one", RightText: "two"})
	require.NoError(t, err)
	wri, req := httptest.NewRecorder(), httptest.NewRequest("POST", "/diff?level=strict", strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(wri, req)
	assert.Equal(t, http.StatusOK, wri.Code, wri.Body.String())
}
