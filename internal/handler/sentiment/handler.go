package sentiment

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	sentimentservice "github.com/milo-garden/mindful-garden/backend/internal/service/sentiment"
	"github.com/milo-garden/mindful-garden/backend/pkg/utils"
)

// Analyzer scores the sentiment of a text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (sentimentservice.Result, error)
}

// Handler serves POST /sentiment.
type Handler struct {
	analyzer Analyzer
}

func New(analyzer Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sentiment", h.handleSentiment)
}

func (h *Handler) handleSentiment(w http.ResponseWriter, r *http.Request) {
	body, err := utils.DecodeObject(w, r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	text, err := utils.RequireString(body, "text")
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), text)
	if err != nil {
		log.Printf("[sentiment] analyze failed: %v", err)
		utils.RespondAppError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}
