package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amidalab/amidakuji/pkg/cache"
	"github.com/amidalab/amidakuji/pkg/history"
	"github.com/amidalab/amidakuji/pkg/pipeline"
	"github.com/amidalab/amidakuji/pkg/share"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := history.NewFileStore(t.TempDir())
	require.NoError(t, err)

	srv := New(Config{
		Runner:       pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{})),
		Store:        store,
		Logger:       log.NewWithOptions(io.Discard, log.Options{}),
		ShareBaseURL: "http://example.com/draw",
	})

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func createDraw(t *testing.T, ts *httptest.Server) map[string]any {
	t.Helper()

	body := `{"participants":["alice","bob","carol"],"results":["coffee","tea","cocoa"]}`
	resp, err := http.Post(ts.URL+"/v1/draws", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateDraw(t *testing.T) {
	ts := testServer(t)
	out := createDraw(t, ts)

	assert.NotEmpty(t, out["id"])
	assert.NotEmpty(t, out["ladder_hash"])
	assert.NotEmpty(t, out["share_code"])
	assert.Contains(t, out["share_url"], "code=")

	l, ok := out["ladder"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, l["participants"], 3)
	assert.Len(t, l["mapping"], 3)
}

func TestCreateDrawRejectsInvalidInput(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"one participant", `{"participants":["solo"],"results":["prize"]}`},
		{"length mismatch", `{"participants":["a","b"],"results":["x"]}`},
		{"duplicates", `{"participants":["a","a"],"results":["x","y"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/draws", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.NotEmpty(t, out["error"])
			assert.NotEmpty(t, out["code"])
		})
	}
}

func TestGetDraw(t *testing.T) {
	ts := testServer(t)
	created := createDraw(t, ts)

	resp, err := http.Get(fmt.Sprintf("%s/v1/draws/%s", ts.URL, created["id"]))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, created["id"], out["id"])
}

func TestGetDrawMissing(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/v1/draws/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "DRAW_NOT_FOUND", out["code"])
}

func TestListDraws(t *testing.T) {
	ts := testServer(t)
	createDraw(t, ts)
	createDraw(t, ts)

	resp, err := http.Get(ts.URL + "/v1/draws/?limit=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Draws []json.RawMessage `json:"draws"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.Count)
	assert.Len(t, out.Draws, 1)
}

func TestRenderDraw(t *testing.T) {
	ts := testServer(t)
	created := createDraw(t, ts)
	base := fmt.Sprintf("%s/v1/draws/%s/render", ts.URL, created["id"])

	t.Run("default svg", func(t *testing.T) {
		resp, err := http.Get(base)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<svg")
	})

	t.Run("text with highlight", func(t *testing.T) {
		resp, err := http.Get(base + "?format=text&highlight=0")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(data), "│")
	})

	t.Run("dot", func(t *testing.T) {
		resp, err := http.Get(base + "?format=dot")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(data), "digraph")
	})

	t.Run("graphviz mapping diagram", func(t *testing.T) {
		resp, err := http.Get(base + "?format=dotsvg")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<svg")
		assert.Contains(t, string(data), "alice")
	})

	t.Run("bad format", func(t *testing.T) {
		resp, err := http.Get(base + "?format=gif")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad highlight", func(t *testing.T) {
		resp, err := http.Get(base + "?highlight=99")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRenderIsStable(t *testing.T) {
	// Re-rendering a stored draw must reproduce the exact same rungs,
	// not sample a new ladder.
	ts := testServer(t)
	created := createDraw(t, ts)
	url := fmt.Sprintf("%s/v1/draws/%s/render?format=json", ts.URL, created["id"])

	fetch := func() []byte {
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, fetch(), fetch())
}

func TestDeleteDraw(t *testing.T) {
	ts := testServer(t)
	created := createDraw(t, ts)
	url := fmt.Sprintf("%s/v1/draws/%s", ts.URL, created["id"])

	req, err := http.NewRequest(http.MethodDelete, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(url)
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestShareEndpoints(t *testing.T) {
	ts := testServer(t)

	body := `{"participants":["A","B","C"],"results":["X","Y","Z"]}`
	resp, err := http.Post(ts.URL+"/v1/share", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created["code"])
	assert.Contains(t, created["url"], "http://example.com/draw")

	t.Run("decode", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/share/" + created["code"])
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Participants []string `json:"participants"`
			Results      []string `json:"results"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, []string{"A", "B", "C"}, out.Participants)
		assert.Equal(t, []string{"X", "Y", "Z"}, out.Results)
	})

	t.Run("qr", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/share/" + created["code"] + "/qr")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}))
	})

	t.Run("bad code", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/share/garbage")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestShareQRIsCached(t *testing.T) {
	store, err := history.NewFileStore(t.TempDir())
	require.NoError(t, err)
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	srv := New(Config{
		Runner:       pipeline.NewRunner(fc, nil, log.NewWithOptions(io.Discard, log.Options{})),
		Store:        store,
		Logger:       log.NewWithOptions(io.Discard, log.Options{}),
		ShareBaseURL: "http://example.com/draw",
	})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	code, err := share.Encode([]string{"A", "B"}, []string{"X", "Y"})
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/v1/share/" + code + "/qr")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// The image lands in the cache under the share key.
	key := cache.NewDefaultKeyer().ShareKey(code, 256)
	cached, hit, err := fc.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, hit, "QR image should be cached after the first request")
	assert.Equal(t, served, cached)

	// A repeat request serves the identical bytes.
	resp2, err := http.Get(ts.URL + "/v1/share/" + code + "/qr")
	require.NoError(t, err)
	defer resp2.Body.Close()
	again, err := io.ReadAll(resp2.Body)
	require.NoError(t, err)
	assert.Equal(t, served, again)
}
