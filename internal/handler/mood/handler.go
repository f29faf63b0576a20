package mood

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milo-garden/mindful-garden/backend/internal/model/mood"
	"github.com/milo-garden/mindful-garden/backend/pkg/utils"
)

// MoodService records and lists mood entries.
type MoodService interface {
	Create(ctx context.Context, fields map[string]any) (string, error)
	Recent(ctx context.Context) ([]mood.Entry, error)
}

// Handler serves POST and GET /mood.
type Handler struct {
	moodSvc MoodService
}

func New(moodSvc MoodService) *Handler {
	return &Handler{moodSvc: moodSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/mood", h.handleCreate)
	r.Get("/mood", h.handleList)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := utils.DecodeObject(w, r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	id, err := h.moodSvc.Create(r.Context(), body)
	if err != nil {
		log.Printf("[mood] create failed: %v", err)
		utils.RespondAppError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.moodSvc.Recent(r.Context())
	if err != nil {
		log.Printf("[mood] list failed: %v", err)
		utils.RespondAppError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, entries)
}
