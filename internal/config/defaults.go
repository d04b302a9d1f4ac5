package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

// Built-in defaults. The year range matches the original reminder book.
func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"file":         "",
		"confirm_exit": true,
		"years": map[string]interface{}{
			"first": 2017,
			"last":  2020,
		},
		"log": map[string]interface{}{
			"level": "info",
			"file":  "", // empty means <data dir>/rem.log
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
