// Package config loads catchboard settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend kinds.
const (
	BackendLocal    = "local"
	BackendFirebase = "firebase"
)

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. CATCHBOARD_SERVER_PORT.
const EnvPrefix = "CATCHBOARD"

// Settings is the full configuration.
type Settings struct {
	Server struct {
		Port int `mapstructure:"port"`

		// SecureCookie marks the session cookie HTTPS only. Enable behind TLS.
		SecureCookie bool `mapstructure:"securecookie"`
	} `mapstructure:"server"`

	Log struct {
		Level string `mapstructure:"level"` // debug, info, warn, error
		JSON  bool   `mapstructure:"json"`
	} `mapstructure:"log"`

	Auth struct {
		Secret        string        `mapstructure:"secret"`
		TokenDuration time.Duration `mapstructure:"tokenduration"`
		CookieName    string        `mapstructure:"cookiename"`
	} `mapstructure:"auth"`

	Backend struct {
		Kind string `mapstructure:"kind"` // local or firebase

		Local struct {
			DBPath     string `mapstructure:"dbpath"`
			ObjectsDir string `mapstructure:"objectsdir"`
		} `mapstructure:"local"`

		// Firebase is the backend-connection descriptor of the hosted project.
		Firebase struct {
			ProjectID       string `mapstructure:"projectid"`
			CredentialsFile string `mapstructure:"credentialsfile"`
			Bucket          string `mapstructure:"bucket"`
		} `mapstructure:"firebase"`
	} `mapstructure:"backend"`

	Tournament struct {
		Name         string   `mapstructure:"name"`
		Species      []string `mapstructure:"species"`
		Participants []string `mapstructure:"participants"` // roster seeded at startup
		TimeZone     string   `mapstructure:"timezone"`
	} `mapstructure:"tournament"`
}

// Location resolves the configured display time zone. An empty zone means local time.
func (s *Settings) Location() (*time.Location, error) {
	if s.Tournament.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Tournament.TimeZone)
}

// Load reads settings from configFile (optional) and CATCHBOARD_* environment
// variables on top of the defaults. With an empty configFile, config.yaml is
// searched in the working directory and /etc/catchboard; a missing file is not
// an error.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/catchboard")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// Validate checks settings for values the server cannot start with.
func Validate(s *Settings) error {
	var errs []error

	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Server.Port))
	}

	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s.Log.Level))
	}

	if len(s.Auth.Secret) < 16 {
		errs = append(errs, errors.New("auth.secret must be at least 16 characters"))
	}
	if s.Auth.TokenDuration <= 0 {
		errs = append(errs, errors.New("auth.tokenduration must be positive"))
	}
	if s.Auth.CookieName == "" {
		errs = append(errs, errors.New("auth.cookiename is required"))
	}

	switch s.Backend.Kind {
	case BackendLocal:
		if s.Backend.Local.DBPath == "" || s.Backend.Local.ObjectsDir == "" {
			errs = append(errs, errors.New("backend.local.dbpath and backend.local.objectsdir are required"))
		}
	case BackendFirebase:
		if s.Backend.Firebase.ProjectID == "" || s.Backend.Firebase.Bucket == "" {
			errs = append(errs, errors.New("backend.firebase.projectid and backend.firebase.bucket are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("backend.kind must be %q or %q, got %q", BackendLocal, BackendFirebase, s.Backend.Kind))
	}

	if len(s.Tournament.Species) == 0 {
		errs = append(errs, errors.New("tournament.species must list at least one species"))
	}

	if _, err := s.Location(); err != nil {
		errs = append(errs, fmt.Errorf("tournament.timezone: %w", err))
	}

	return errors.Join(errs...)
}
