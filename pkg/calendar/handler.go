package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/calendarui/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	calendar *Service
}

type EventDTO struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type TitleDTO struct {
	Title string `json:"title"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")

	var (
		events []Event
		err    error
	)
	if fromString == "" && toString == "" {
		events, err = h.calendar.List(r.Context())
	} else {
		from, parseErr := time.Parse(time.RFC3339, fromString)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid from (date) format", "'from' must be in RFC3339 format")
			return
		}
		to, parseErr := time.Parse(time.RFC3339, toString)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid to (date) format", "'to' must be in RFC3339 format")
			return
		}
		events, err = h.calendar.ListBetween(r.Context(), from, to)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, eventsToDTO(events))
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	added, err := h.calendar.Add(r.Context(), dtoToEvent(eventDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, eventToDTO(added))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	eventDTO.ID = mux.Vars(r)["eventId"]

	updated, err := h.calendar.Update(r.Context(), dtoToEvent(eventDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, eventToDTO(updated))
}

func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	var titleDTO TitleDTO
	if err := json.NewDecoder(r.Body).Decode(&titleDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.calendar.SetTitle(r.Context(), mux.Vars(r)["eventId"], titleDTO.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, eventToDTO(updated))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	if err := h.calendar.Delete(r.Context(), eventId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReplaceEvents(w http.ResponseWriter, r *http.Request) {
	var eventDTOs []EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTOs); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	events := make([]Event, 0, len(eventDTOs))
	for _, dto := range eventDTOs {
		events = append(events, dtoToEvent(dto))
	}
	if err := h.calendar.ReplaceAll(r.Context(), events); err != nil {
		writeServiceError(w, err)
		return
	}

	all, err := h.calendar.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventsToDTO(all))
}

func (h *Handler) ImportICS(w http.ResponseWriter, r *http.Request) {
	imported, err := h.calendar.ImportICS(r.Context(), r.Body)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid calendar file", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventsToDTO(imported))
}

func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	if err := h.calendar.ExportICS(r.Context(), w); err != nil {
		log.Errorf("failed to export calendar: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", err.Error())
	case errors.Is(err, ErrInvalidEvent):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
	default:
		log.Errorf("calendar request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func eventsToDTO(events []Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}
	return dtos
}

func eventToDTO(e Event) EventDTO {
	return EventDTO{
		ID:    e.ID,
		Title: e.Title,
		Start: e.Start,
		End:   e.End,
	}
}

func dtoToEvent(e EventDTO) Event {
	return Event{
		ID:    e.ID,
		Title: e.Title,
		Start: e.Start,
		End:   e.End,
	}
}
