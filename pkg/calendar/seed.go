package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Events []seedEvent `yaml:"events"`
}

type seedEvent struct {
	ID    string    `yaml:"id"`
	Title string    `yaml:"title"`
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// LoadSeed reads a YAML event list:
//
//	events:
//	  - id: standup
//	    title: Standup
//	    start: 2024-03-04T09:00:00Z
//	    end: 2024-03-04T09:15:00Z
func LoadSeed(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]Event, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	events := make([]Event, 0, len(file.Events))
	for i, e := range file.Events {
		event := Event{ID: e.ID, Title: e.Title, Start: e.Start, End: e.End}
		if err := validate(event); err != nil {
			return nil, fmt.Errorf("seed event %d: %w", i, err)
		}
		events = append(events, event)
	}
	return events, nil
}

// Seed replaces the store content with events, typically loaded at startup.
func (s *Service) Seed(ctx context.Context, events []Event) error {
	if err := s.replace(ctx, "seed", events); err != nil {
		return err
	}
	log.Infof("seeded calendar with %d events", len(events))
	return nil
}
