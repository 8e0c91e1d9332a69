package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"backend":      "file",
			"data_dir":     "~/.checkup-tracker",
			"database_ref": "",
			"database_url": "",
		},
		"notifications": map[string]interface{}{
			"enabled":  false,
			"phone":    "",
			"schedule": "0 9 * * *", // daily at 9 AM
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
