package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter builds the HTTP router: the websocket endpoint plus a
// health check
func NewRouter(gateway *Gateway, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", gateway.ServeWS).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return recovery(logger, r)
}
