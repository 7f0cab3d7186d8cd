package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
)

type GlobalConfig struct {
	Backend Backend `mapstructure:",squash"`
	Server  Server  `mapstructure:",squash"`
	View    View    `mapstructure:",squash"`
	Log     Log     `mapstructure:",squash"`
	Trace   Trace   `mapstructure:",squash"`
}

var config = &GlobalConfig{}

func init() {
	if err := defaults.Set(config); err != nil {
		fmt.Printf("set default err: %+v", err)
		os.Exit(1)
	}
}

func Global() *GlobalConfig {
	return config
}
