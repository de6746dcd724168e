package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statsHandler serves the bot statistics snapshot.
func statsHandler(statsUC *usecase.StatsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := statsUC.Snapshot(r.Context())
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

// postsListHandler returns the newest posts, 'limit' query parameter capped at 100.
func postsListHandler(postUC *usecase.PostUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}

		posts, err := postUC.ListRecent(ctx, limit)
		if err != nil {
			http.Error(w, "Failed to list posts", http.StatusInternalServerError)
			return
		}
		total, err := postUC.Count(ctx)
		if err != nil {
			http.Error(w, "Failed to count posts", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, struct {
			Data  any `json:"data"`
			Total int `json:"total"`
			Limit int `json:"limit"`
		}{posts, total, limit})
	}
}

func postGetHandler(postUC *usecase.PostUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid post id", http.StatusBadRequest)
			return
		}
		post, err := postUC.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get post", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

// postDeleteHandler removes a post. Deleting the active signal post is
// rejected with 409.
func postDeleteHandler(postUC *usecase.PostUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid post id", http.StatusBadRequest)
			return
		}
		deleted, err := postUC.Delete(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to delete post", http.StatusInternalServerError)
			return
		}
		if !deleted {
			http.Error(w, "Post is the active signal post", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func usersListHandler(userUC *usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		users, err := userUC.List(ctx)
		if err != nil {
			http.Error(w, "Failed to list users", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data  any `json:"data"`
			Total int `json:"total"`
		}{users, len(users)})
	}
}

func settingsHandler(settingsUC *usecase.SettingsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp := struct {
			SignalPostID   *int64 `json:"signal_post_id"`
			SupportContact string `json:"support_contact"`
		}{SupportContact: settingsUC.SupportContact(ctx)}
		if id, ok := settingsUC.SignalPostID(ctx); ok {
			resp.SignalPostID = &id
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// signalPutHandler designates an existing post as the signal post.
func signalPutHandler(settingsUC *usecase.SettingsUseCase, postUC *usecase.PostUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req struct {
			PostID int64 `json:"post_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if _, err := postUC.Get(ctx, req.PostID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.Error(w, "Post does not exist", http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, "Failed to look up post", http.StatusInternalServerError)
			return
		}
		if err := settingsUC.SetSignalPostID(ctx, req.PostID); err != nil {
			http.Error(w, "Failed to set signal post", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
