package app

import (
	"fmt"

	"github.com/klokku/calendarui/internal/config"
	"github.com/klokku/calendarui/internal/event_bus"
	"github.com/klokku/calendarui/internal/utils"
	"github.com/klokku/calendarui/pkg/calendar"
	"github.com/klokku/calendarui/pkg/interaction"
	"github.com/klokku/calendarui/pkg/view"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	CalendarRepository *calendar.MemoryRepository
	CalendarService    *calendar.Service
	CalendarHandler    *calendar.Handler

	LayoutController *interaction.Controller
	LayoutHandler    *interaction.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application, clock utils.Clock) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = clock

	deps.CalendarRepository = calendar.NewMemoryRepository()
	deps.CalendarService = calendar.NewService(deps.CalendarRepository, deps.EventBus)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)

	arr, err := interaction.ArrangerFromConfig(cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("invalid layout configuration: %w", err)
	}
	defaults, err := viewDefaults(cfg.View)
	if err != nil {
		return nil, fmt.Errorf("invalid view configuration: %w", err)
	}
	deps.LayoutController = interaction.NewController(deps.CalendarService, arr, deps.EventBus, interaction.OptionsFromConfig(cfg.Layout))
	deps.LayoutHandler = interaction.NewHandler(deps.LayoutController, deps.Clock, defaults)

	subscribeLogging(deps.EventBus)

	return deps, nil
}

func viewDefaults(cfg config.View) (interaction.ViewDefaults, error) {
	kind, err := view.ParseKind(cfg.Default)
	if err != nil {
		return interaction.ViewDefaults{}, err
	}
	weekStartsOn, err := view.ParseWeekday(cfg.WeekStartsOn)
	if err != nil {
		return interaction.ViewDefaults{}, err
	}
	return interaction.ViewDefaults{Kind: kind, WeekStartsOn: weekStartsOn}, nil
}
