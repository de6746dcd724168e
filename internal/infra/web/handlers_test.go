package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
)

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer test-key")
	return req
}

func TestAPIRejectsMissingCredentials(t *testing.T) {
	srv, _, _ := newTestServer()
	router := srv.Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for bad key", rec.Code)
	}
}

func TestAPIStats(t *testing.T) {
	srv, posts, settings := newTestServer()
	router := srv.Routes()

	id, _ := posts.Create(context.Background(), &model.Post{Title: "A", Main: model.TextPayload("x")})
	_ = settings.SetSignalPostID(context.Background(), id)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Users        int   `json:"users"`
		Posts        int   `json:"posts"`
		SignalPostID int64 `json:"signal_post_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Posts != 1 || got.SignalPostID != id {
		t.Fatalf("got %+v", got)
	}
}

func TestAPIPostLifecycle(t *testing.T) {
	srv, posts, _ := newTestServer()
	router := srv.Routes()

	id, _ := posts.Create(context.Background(), &model.Post{Title: "Doomed", Main: model.TextPayload("x")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/posts/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/v1/posts/1", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if _, err := posts.Find(context.Background(), id); err == nil {
		t.Fatal("post survived delete")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/posts/1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d", rec.Code)
	}
}

func TestAPIDeleteSignalPostConflicts(t *testing.T) {
	srv, posts, settings := newTestServer()
	router := srv.Routes()

	id, _ := posts.Create(context.Background(), &model.Post{Title: "Signal", Main: model.TextPayload("x")})
	_ = settings.SetSignalPostID(context.Background(), id)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/v1/posts/1", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if _, err := posts.Find(context.Background(), id); err != nil {
		t.Fatal("signal post was deleted")
	}
}

func TestAPISetSignalValidatesPost(t *testing.T) {
	srv, posts, settings := newTestServer()
	router := srv.Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/settings/signal", []byte(`{"post_id":99}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 for unknown post", rec.Code)
	}

	id, _ := posts.Create(context.Background(), &model.Post{Title: "S", Main: model.TextPayload("x")})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/settings/signal", []byte(`{"post_id":1}`)))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got, ok := settings.SignalPostID(context.Background()); !ok || got != id {
		t.Fatalf("signal = (%d, %v)", got, ok)
	}
}

func TestAPISessionMintAndUse(t *testing.T) {
	srv, _, _ := newTestServer()
	router := srv.Routes()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewReader([]byte(`{"api_key":"test-key"}`)))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("mint status = %d", rec.Code)
	}
	var minted struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &minted); err != nil || minted.Token == "" {
		t.Fatalf("mint body = %s (%v)", rec.Body.String(), err)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer "+minted.Token)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("session-authed status = %d", rec.Code)
	}
}

func TestAPISessionRejectsWrongKey(t *testing.T) {
	srv, _, _ := newTestServer()
	router := srv.Routes()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewReader([]byte(`{"api_key":"nope"}`)))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
