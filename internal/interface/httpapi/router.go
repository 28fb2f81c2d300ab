package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the service's HTTP routes. Authentication happens
// upstream; handlers only require the owner identity headers it sets.
func NewRouter(backupHandler *BackupHandler) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/backup/preview", backupHandler.Preview).Methods(http.MethodPost)
	api.HandleFunc("/backup/import", backupHandler.Import).Methods(http.MethodPost)
	api.HandleFunc("/backup/export", backupHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/backup/history", backupHandler.History).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	return r
}
