package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"quiz-runner/internal/app"
	"quiz-runner/internal/chart"
	"quiz-runner/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type catalogResponse struct {
	Default domain.SetKey   `json:"default"`
	Sets    []domain.SetKey `json:"sets"`
}

// NewRouter mounts the health probe, the websocket endpoint and the REST helpers.
func NewRouter(bank *app.QuestionBank, ws *WSHandler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	r.Route("/api", func(ar chi.Router) {
		ar.Get("/catalog", CatalogHandler(bank))
		ar.Get("/chart.svg", ChartHandler())
	})
	return r
}

// CatalogHandler lists the question sets a player can pick.
func CatalogHandler(bank *app.QuestionBank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sets, err := bank.Catalog(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if sets == nil {
			sets = []domain.SetKey{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(catalogResponse{Default: bank.Fallback(), Sets: sets})
	}
}

// ChartHandler renders the results pie chart for ?correct=&wrong=.
func ChartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		correct, err1 := parseCount(r.URL.Query().Get("correct"))
		wrong, err2 := parseCount(r.URL.Query().Get("wrong"))
		if err1 != nil || err2 != nil {
			http.Error(w, "correct and wrong must be non-negative integers", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(chart.Render(correct, wrong))
	}
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}
