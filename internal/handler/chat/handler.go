package chat

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milo-garden/mindful-garden/backend/pkg/utils"
)

// ReplyService produces a chat reply for one user message.
type ReplyService interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Handler serves POST /chat.
type Handler struct {
	aiSvc ReplyService
}

func New(aiSvc ReplyService) *Handler {
	return &Handler{aiSvc: aiSvc}
}

// RegisterRoutes mounts the chat route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	body, err := utils.DecodeObject(w, r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	message, err := utils.RequireString(body, "message")
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	reply, err := h.aiSvc.Reply(r.Context(), message)
	if err != nil {
		log.Printf("[chat] reply failed: %v", err)
		utils.RespondAppError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"response": reply})
}
