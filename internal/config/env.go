package config

import "time"

// Backend is the program/driver API the views read from.
type Backend struct {
	Addr    string        `mapstructure:"BACKEND_ADDR" default:"http://127.0.0.1:5000/api"`
	Timeout time.Duration `mapstructure:"BACKEND_TIMEOUT" default:"30s"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"piwarmer"`
	Service  string `mapstructure:"SERVICE" default:"web"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

// View toggles rendering behaviour of the program pages.
// EscapeHTML is off by default: names are trusted and inserted as HTML.
type View struct {
	EscapeHTML bool `mapstructure:"VIEW_ESCAPE_HTML" default:"false"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version        string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint  string `mapstructure:"TRACE_ENDPOINT" default:""`
	MetricEndpoint string `mapstructure:"METRIC_ENDPOINT" default:""`
	Stdout         bool   `mapstructure:"TRACE_STDOUT" default:"false"`
}
