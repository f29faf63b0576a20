package root

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milo-garden/mindful-garden/backend/pkg/utils"
)

const welcomeMessage = "Welcome to Milo Mindful Garden API!"

// Handler serves the provider-free routes.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts /, /favicon.ico and /health.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleWelcome)
	r.Get("/favicon.ico", h.handleFavicon)
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (h *Handler) handleFavicon(w http.ResponseWriter, _ *http.Request) {
	utils.RespondNoContent(w)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
