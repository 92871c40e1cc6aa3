package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/eventcal/internal/rest"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events
	r.HandleFunc("/api/events/{date}", deps.EventHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/events/{date}", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/events/{date}/{eventId}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/events/{date}/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Calendar grid
	r.HandleFunc("/api/calendar", deps.CalendarHandler.GetGrid).Methods("GET")

	// View state
	r.HandleFunc("/api/view", deps.ViewHandler.GetState).Methods("GET")
	r.HandleFunc("/api/view", deps.ViewHandler.UpdateState).Methods("PATCH")
	r.HandleFunc("/api/view/events", deps.ViewHandler.GetVisibleEvents).Methods("GET")

	// Export
	r.HandleFunc("/api/export/{format}", deps.ExportHandler.Export).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
}
