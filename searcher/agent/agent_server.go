package agent

import (
	"encoding/json"
	"io"
	"net/http"
	"qenolaba/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// MoveResponse is the answer of the /findmove endpoint.
type MoveResponse struct {
	Move  game.Move `json:"move"`
	Name  string    `json:"name"`
	Value int       `json:"value"`
}

// NewAgentServer returns a handler that lets remote game loops use a: the
// request body of POST /findmove is a position diagram, the response the
// chosen move. The agent is called by one request at a time.
func NewAgentServer(a Agent) http.Handler {
	requests := make(chan struct{}, 1)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/findmove", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, 4096))
		if err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		b := game.NewBoard()
		if err := b.SetState(string(body)); err != nil {
			http.Error(w, "bad position: "+err.Error(), http.StatusBadRequest)
			return
		}
		if b.ValidState() != game.Valid {
			http.Error(w, "position is not playable", http.StatusUnprocessableEntity)
			return
		}

		select {
		case requests <- struct{}{}:
		case <-r.Context().Done():
			return
		}
		m, metric := a.FindMove(r.Context(), b)
		<-requests
		log.Debug().Msgf("agent server: %v plays %s", b.ToMove(), m.Name())

		w.Header().Set("Content-Type", "application/json")
		resp := MoveResponse{Move: m, Name: m.Name(), Value: metric.Value}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
		}
	})
	return r
}

// StartAgentServer serves a on addr until the listener fails.
func StartAgentServer(addr string, a Agent) error {
	log.Info().Msgf("starting agent server on %s ...", addr)
	return http.ListenAndServe(addr, NewAgentServer(a))
}
