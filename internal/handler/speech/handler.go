package speech

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milo-garden/mindful-garden/backend/internal/model/speech"
	"github.com/milo-garden/mindful-garden/backend/pkg/utils"
)

// SpeechService abstracts synthesis so the handler can be tested without providers.
type SpeechService interface {
	SynthesizeSpeech(ctx context.Context, req *speech.TTSRequest) (*speech.TTSResponse, error)
}

// Handler serves POST /tts.
type Handler struct {
	speechSvc SpeechService
}

func New(speechSvc SpeechService) *Handler {
	return &Handler{speechSvc: speechSvc}
}

// RegisterRoutes mounts the text-to-speech route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/tts", h.handleSynthesize)
}

// handleSynthesize answers with only the public audio URL.
func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
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

	resp, err := h.speechSvc.SynthesizeSpeech(r.Context(), &speech.TTSRequest{Text: text})
	if err != nil {
		log.Printf("[speech] synthesize failed: %v", err)
		utils.RespondAppError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"audio_url": resp.AudioURL})
}
