package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/milo-garden/mindful-garden/backend/internal/config"
	"github.com/milo-garden/mindful-garden/backend/internal/handler/chat"
	"github.com/milo-garden/mindful-garden/backend/internal/handler/mood"
	"github.com/milo-garden/mindful-garden/backend/internal/handler/root"
	"github.com/milo-garden/mindful-garden/backend/internal/handler/sentiment"
	"github.com/milo-garden/mindful-garden/backend/internal/handler/speech"
	middlewarePkg "github.com/milo-garden/mindful-garden/backend/internal/middleware"
	"github.com/milo-garden/mindful-garden/backend/pkg/utils"
)

// Services groups the dependencies the routes call into.
type Services struct {
	Chat      chat.ReplyService
	Sentiment sentiment.Analyzer
	Speech    speech.SpeechService
	Mood      mood.MoodService
}

// NewRouter wires HTTP routes to core services.
func NewRouter(corsCfg config.CORSConfig, svcs Services) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(corsCfg))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	root.New().RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		chat.New(svcs.Chat).RegisterRoutes(api)
		sentiment.New(svcs.Sentiment).RegisterRoutes(api)
		speech.New(svcs.Speech).RegisterRoutes(api)
		mood.New(svcs.Mood).RegisterRoutes(api)
	})

	return r
}
