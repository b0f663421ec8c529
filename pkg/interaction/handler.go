package interaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/klokku/calendarui/internal/rest"
	"github.com/klokku/calendarui/internal/utils"
	"github.com/klokku/calendarui/pkg/calendar"
	"github.com/klokku/calendarui/pkg/event_area"
	"github.com/klokku/calendarui/pkg/render"
	"github.com/klokku/calendarui/pkg/view"
	log "github.com/sirupsen/logrus"
)

// ViewDefaults fill in what a layout request leaves out.
type ViewDefaults struct {
	Kind         view.Kind
	WeekStartsOn time.Weekday
}

type Handler struct {
	controller *Controller
	clock      utils.Clock
	defaults   ViewDefaults
}

type ViewportDTO struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
}

type ViewDTO struct {
	Kind         string    `json:"kind"`
	Date         time.Time `json:"date"`
	WeekStartsOn string    `json:"weekStartsOn"`
}

type GestureDTO struct {
	Kind     string  `json:"kind"`
	EventID  string  `json:"eventId"`
	InitialX float64 `json:"initialX"`
	InitialY float64 `json:"initialY"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type LayoutRequest struct {
	Viewport ViewportDTO `json:"viewport"`
	View     ViewDTO     `json:"view"`
	Gesture  *GestureDTO `json:"gesture,omitempty"`
}

type BlockDTO struct {
	Key           string    `json:"key"`
	EventID       string    `json:"eventId"`
	Title         string    `json:"title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Top           float64   `json:"top"`
	Left          float64   `json:"left"`
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	IsFloating    bool      `json:"isFloating"`
	IsTransparent bool      `json:"isTransparent"`
	IsSketch      bool      `json:"isSketch"`
}

type DayMarkerDTO struct {
	Date    time.Time `json:"date"`
	Label   string    `json:"label"`
	IsToday bool      `json:"isToday"`
}

type HourMarkerDTO struct {
	Label string  `json:"label"`
	Top   float64 `json:"top"`
}

type LayoutResponse struct {
	Title             string          `json:"title"`
	Kind              string          `json:"kind"`
	Start             time.Time       `json:"start"`
	Days              int             `json:"days"`
	Previous          time.Time       `json:"previous"`
	Next              time.Time       `json:"next"`
	DayMarkers        []DayMarkerDTO  `json:"dayMarkers"`
	HourMarkers       []HourMarkerDTO `json:"hourMarkers"`
	CurrentTimeOffset *float64        `json:"currentTimeOffset,omitempty"`
	Blocks            []BlockDTO      `json:"blocks"`
}

func NewHandler(controller *Controller, clock utils.Clock, defaults ViewDefaults) *Handler {
	return &Handler{
		controller: controller,
		clock:      clock,
		defaults:   defaults,
	}
}

// Layout renders the requested window, including the overlay of an optional
// in-progress gesture.
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	req, viewport, window, ok := h.decode(w, r)
	if !ok {
		return
	}
	gesture, ok := gestureFromDTO(w, req.Gesture, false)
	if !ok {
		return
	}

	layout, err := h.controller.Render(r.Context(), viewport, window, gesture)
	if err != nil {
		writeError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, h.layoutToDTO(layout, viewport))
}

// Commit applies a confirmed gesture and returns the created or updated event.
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	req, viewport, window, ok := h.decode(w, r)
	if !ok {
		return
	}
	gesture, ok := gestureFromDTO(w, req.Gesture, true)
	if !ok {
		return
	}

	committed, err := h.controller.Commit(r.Context(), viewport, window, *gesture)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if gesture.Kind == Sketch {
		status = http.StatusCreated
	}
	rest.WriteJSON(w, status, calendar.EventDTO{
		ID:    committed.ID,
		Title: committed.Title,
		Start: committed.Start,
		End:   committed.End,
	})
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var dto GestureDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	gesture, ok := gestureFromDTO(w, &dto, true)
	if !ok {
		return
	}

	h.controller.Cancel(r.Context(), *gesture)
	w.WriteHeader(http.StatusNoContent)
}

// SVG renders the same layout as Layout as an SVG image.
func (h *Handler) SVG(w http.ResponseWriter, r *http.Request) {
	req, viewport, window, ok := h.decode(w, r)
	if !ok {
		return
	}
	gesture, ok := gestureFromDTO(w, req.Gesture, false)
	if !ok {
		return
	}

	layout, err := h.controller.Render(r.Context(), viewport, window, gesture)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := render.Options{HourLines: true, CurrentTimeY: h.currentTimeOffset(layout.Window, viewport)}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.SVG(w, layout.Area, layout.Blocks, opts); err != nil {
		log.Errorf("failed to render svg: %v", err)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (LayoutRequest, Viewport, view.Window, bool) {
	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return req, Viewport{}, view.Window{}, false
	}

	kind := h.defaults.Kind
	if req.View.Kind != "" {
		parsed, err := view.ParseKind(req.View.Kind)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid view kind", "'kind' must be 'day' or 'week'")
			return req, Viewport{}, view.Window{}, false
		}
		kind = parsed
	}

	weekStartsOn := h.defaults.WeekStartsOn
	if req.View.WeekStartsOn != "" {
		parsed, err := view.ParseWeekday(req.View.WeekStartsOn)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid week start", err.Error())
			return req, Viewport{}, view.Window{}, false
		}
		weekStartsOn = parsed
	}

	date := req.View.Date
	if date.IsZero() {
		date = h.clock.Now()
	}

	viewport := Viewport{
		Width:  req.Viewport.Width,
		Height: req.Viewport.Height,
		Top:    req.Viewport.Top,
		Left:   req.Viewport.Left,
	}
	return req, viewport, view.WindowFor(kind, date, weekStartsOn), true
}

func gestureFromDTO(w http.ResponseWriter, dto *GestureDTO, required bool) (*Gesture, bool) {
	if dto == nil {
		if required {
			rest.WriteError(w, http.StatusBadRequest, "Missing gesture", "'gesture' is required")
			return nil, false
		}
		return nil, true
	}

	kind, err := ParseGestureKind(dto.Kind)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid gesture", err.Error())
		return nil, false
	}
	g := &Gesture{Kind: kind, EventID: dto.EventID}
	g.InitialX, g.InitialY, g.X, g.Y = dto.InitialX, dto.InitialY, dto.X, dto.Y
	return g, true
}

func (h *Handler) layoutToDTO(layout *Layout, viewport Viewport) LayoutResponse {
	window := layout.Window

	dayMarkers := make([]DayMarkerDTO, 0, window.Days)
	for _, m := range view.DayMarkers(window, h.clock) {
		dayMarkers = append(dayMarkers, DayMarkerDTO{Date: m.Date, Label: m.Label, IsToday: m.IsToday})
	}

	hourMarkers := make([]HourMarkerDTO, 0, 23)
	for _, m := range view.HourMarkers(window.Start) {
		hourMarkers = append(hourMarkers, HourMarkerDTO{Label: m.Label, Top: m.Fraction * viewport.Height})
	}

	blocks := make([]BlockDTO, 0, len(layout.Blocks))
	for _, b := range layout.Blocks {
		blocks = append(blocks, blockToDTO(b))
	}

	return LayoutResponse{
		Title:             window.Title(),
		Kind:              string(window.Kind),
		Start:             window.Start,
		Days:              window.Days,
		Previous:          window.Previous().Start,
		Next:              window.Next().Start,
		DayMarkers:        dayMarkers,
		HourMarkers:       hourMarkers,
		CurrentTimeOffset: h.currentTimeOffset(window, viewport),
		Blocks:            blocks,
	}
}

// currentTimeOffset is nil unless now falls inside the window. Like block
// positions it is relative to the top of the area.
func (h *Handler) currentTimeOffset(window view.Window, viewport Viewport) *float64 {
	now := h.clock.Now().In(window.Start.Location())
	if now.Before(window.Start) || !now.Before(window.End()) {
		return nil
	}
	offset := view.CurrentTimeOffset(now, viewport.Height)
	return &offset
}

func blockToDTO(b event_area.Block) BlockDTO {
	return BlockDTO{
		Key:           b.Key,
		EventID:       b.Event.ID,
		Title:         b.Event.Title,
		Start:         b.Event.Start,
		End:           b.Event.End,
		Top:           b.Top,
		Left:          b.Left,
		Width:         b.Width,
		Height:        b.Height,
		IsFloating:    b.IsFloating,
		IsTransparent: b.IsTransparent,
		IsSketch:      b.IsSketch,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", err.Error())
	case errors.Is(err, ErrInvalidGesture):
		rest.WriteError(w, http.StatusBadRequest, "Invalid gesture", err.Error())
	case errors.Is(err, event_area.ErrInvalidArea):
		rest.WriteError(w, http.StatusBadRequest, "Invalid viewport", err.Error())
	case errors.Is(err, calendar.ErrInvalidEvent):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
	default:
		log.Errorf("layout request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
