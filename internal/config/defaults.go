package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultSecret is only suitable for local development.
const DefaultSecret = "change-me-catchboard-dev-secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.securecookie", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("auth.secret", DefaultSecret)
	v.SetDefault("auth.tokenduration", 24*time.Hour)
	v.SetDefault("auth.cookiename", "catchboard_session")

	v.SetDefault("backend.kind", BackendLocal)
	v.SetDefault("backend.local.dbpath", "./data/catchboard.db")
	v.SetDefault("backend.local.objectsdir", "./data/objects")
	v.SetDefault("backend.firebase.projectid", "")
	v.SetDefault("backend.firebase.credentialsfile", "")
	v.SetDefault("backend.firebase.bucket", "")

	v.SetDefault("tournament.name", "Fishing Tournament")
	v.SetDefault("tournament.species", []string{
		"Largemouth Bass",
		"Smallmouth Bass",
		"Walleye",
		"Northern Pike",
		"Crappie",
		"Bluegill",
		"Catfish",
	})
	v.SetDefault("tournament.participants", []string{})
	v.SetDefault("tournament.timezone", "")
}
