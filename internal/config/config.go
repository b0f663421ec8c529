package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "CALENDARUI_"

type Application struct {
	Server Server `koanf:"server"`
	Layout Layout `koanf:"layout"`
	View   View   `koanf:"view"`
	Seed   Seed   `koanf:"seed"`
}

type Server struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"readtimeout"`
	WriteTimeout time.Duration `koanf:"writetimeout"`
	IdleTimeout  time.Duration `koanf:"idletimeout"`
}

// Layout holds the geometry and snapping used for every rendered area.
type Layout struct {
	DayPaddingRight float64       `koanf:"daypaddingright"`
	BlockPadding    float64       `koanf:"blockpadding"`
	DragInterval    time.Duration `koanf:"draginterval"`
	MinEventSize    time.Duration `koanf:"mineventsize"`
	// Arranger is "columns" (overlapping events side by side) or "none".
	Arranger string `koanf:"arranger"`
}

type View struct {
	WeekStartsOn string `koanf:"weekstartson"`
	Default      string `koanf:"default"`
}

// Seed points at files loaded into the event store at startup. Both are optional.
type Seed struct {
	EventsFile string `koanf:"eventsfile"`
	ICSFile    string `koanf:"icsfile"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr:         ":8181",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Layout: Layout{
			DayPaddingRight: 12,
			BlockPadding:    2,
			DragInterval:    15 * time.Minute,
			MinEventSize:    30 * time.Minute,
			Arranger:        "columns",
		},
		View: View{
			WeekStartsOn: "monday",
			Default:      "week",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.ProviderWithValue(envPrefix, ".", func(k, v string) (string, any) {
		// CALENDARUI_LAYOUT_DRAGINTERVAL -> layout.draginterval
		k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
		return k, v
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
