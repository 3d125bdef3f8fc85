// Package config loads the dashboard configuration from a TOML file.
//
// The file is optional and so is every key in it: Load starts from Default()
// and only overrides what the file actually sets. Unknown keys and sections
// are ignored so older binaries keep working with newer config files. The
// returned Config is installed once at startup and treated as immutable; it
// is passed by pointer into renderers and never mutated afterwards.
package config

// Config is the process-wide configuration record.
type Config struct {
	Theme   Theme   `toml:"theme"`
	Server  Server  `toml:"server"`
	Browser Browser `toml:"browser"`
	Layout  Layout  `toml:"layout"`
	Mapbox  Mapbox  `toml:"mapbox"`
	Runner  Runner  `toml:"runner"`
	Logger  Logger  `toml:"logger"`
	UI      UI      `toml:"ui"`
}

// Theme describes the interface palette and body font.
type Theme struct {
	PrimaryColor             string `toml:"primaryColor"`
	BackgroundColor          string `toml:"backgroundColor"`
	SecondaryBackgroundColor string `toml:"secondaryBackgroundColor"`
	TextColor                string `toml:"textColor"`

	// Font is one of "sans-serif", "serif" or "monospace".
	Font string `toml:"font"`
}

// Server controls network and process behavior.
type Server struct {
	// Headless suppresses the graphical launcher window after startup.
	Headless bool `toml:"headless"`

	// Port is the HTTP listen port, 1-65535. Validated at load time.
	Port int `toml:"port"`

	// EnableCompression turns on response compression on the transport.
	EnableCompression bool `toml:"enableCompression"`

	// DataPath is where runtime state (the usage-stats database) is kept.
	// A leading ~ is expanded to the user home directory.
	DataPath string `toml:"dataPath"`
}

// Browser holds viewer-facing toggles.
type Browser struct {
	// GatherUsageStats is the telemetry opt-in. When false nothing is
	// recorded anywhere.
	GatherUsageStats bool `toml:"gatherUsageStats"`
}

// Layout controls the content area.
type Layout struct {
	// Wide makes the content area span the full viewport width.
	Wide bool `toml:"wide"`
}

// Mapbox carries the map-tile credential used by the fuel-price page.
type Mapbox struct {
	Token string `toml:"token"`
}

// Runner holds page-execution toggles.
type Runner struct {
	// MagicEnabled is parsed for compatibility with existing config files
	// but is inert here: all display goes through explicit render
	// instructions, there is no bare-expression auto-display.
	MagicEnabled bool `toml:"magicEnabled"`

	// InstallTracer wraps the page registry with the render tracer.
	InstallTracer bool `toml:"installTracer"`
}

// Logger controls the structured logger.
type Logger struct {
	// Level is the minimum logged severity: debug, info, warning or error.
	Level string `toml:"level"`

	// Format is "json" or "text".
	Format string `toml:"format"`

	// MessageFormat is the text-format line template. Placeholders
	// {time}, {level} and {msg} are substituted.
	MessageFormat string `toml:"messageFormat"`
}

// UI holds navigation chrome toggles.
type UI struct {
	// HideSidebarNav suppresses the auto-generated page list in the
	// sidebar. The horizontal navigation bar is always shown.
	HideSidebarNav bool `toml:"hideSidebarNav"`
}

// Default returns the fully-defaulted configuration. Loading an empty or
// absent file yields exactly this record.
func Default() *Config {
	return &Config{
		Theme: Theme{
			PrimaryColor:             "#FF4B4B",
			BackgroundColor:          "#FFFFFF",
			SecondaryBackgroundColor: "#F0F2F6",
			TextColor:                "#31333F",
			Font:                     "sans-serif",
		},
		Server: Server{
			Headless:          true,
			Port:              8501,
			EnableCompression: false,
			DataPath:          "~/.portfolio",
		},
		Browser: Browser{
			GatherUsageStats: true,
		},
		Layout: Layout{
			Wide: true,
		},
		Mapbox: Mapbox{
			Token: "",
		},
		Runner: Runner{
			MagicEnabled:  true,
			InstallTracer: false,
		},
		Logger: Logger{
			Level:         "info",
			Format:        "json",
			MessageFormat: "{time} {level} {msg}",
		},
		UI: UI{
			HideSidebarNav: true,
		},
	}
}
