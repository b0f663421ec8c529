package app

import (
	"github.com/gorilla/mux"
	"github.com/klokku/calendarui/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Calendar events
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.ReplaceEvents).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}/title", deps.CalendarHandler.UpdateTitle).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/calendar/import", deps.CalendarHandler.ImportICS).Methods("POST")
	r.HandleFunc("/api/calendar/export", deps.CalendarHandler.ExportICS).Methods("GET")

	// Layout
	r.HandleFunc("/api/layout", deps.LayoutHandler.Layout).Methods("POST")
	r.HandleFunc("/api/layout/commit", deps.LayoutHandler.Commit).Methods("POST")
	r.HandleFunc("/api/layout/cancel", deps.LayoutHandler.Cancel).Methods("POST")
	r.HandleFunc("/api/layout/svg", deps.LayoutHandler.SVG).Methods("POST")
}
