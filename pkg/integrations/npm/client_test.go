package npm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/cache"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations"
)

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(cache.NewNullCache(), time.Hour)
	c.baseURL = srv.URL
	c.SetHTTPClient(srv.Client())
	return c
}

func TestClient_FetchPackage(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{
			"name": "@types/node",
			"dist-tags": {"latest": "22.5.0", "next": "23.0.0-rc"},
			"versions": {
				"22.5.0": {"description": "TypeScript definitions for node", "license": {"type": "MIT"}}
			}
		}`))
	}))
	defer srv.Close()

	info, err := newTestClient(srv).FetchPackage(context.Background(), " @Types/Node ", false)
	if err != nil {
		t.Fatalf("FetchPackage() error: %v", err)
	}
	if gotPath != "/@types%2Fnode" {
		t.Errorf("request path = %s", gotPath)
	}
	if info.Latest != "22.5.0" || info.License != "MIT" || info.Name != "@types/node" {
		t.Errorf("FetchPackage() = %+v", info)
	}
}

func TestClient_LatestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"lodash","dist-tags":{"latest":"4.17.21"},"versions":{}}`))
	}))
	defer srv.Close()

	v, err := newTestClient(srv).LatestVersion(context.Background(), "lodash", false)
	if err != nil || v != "4.17.21" {
		t.Errorf("LatestVersion() = %q, %v", v, err)
	}
}

func TestClient_FetchPackage_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchPackage(context.Background(), "nope", false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
