// Package config loads postos settings from the environment and an optional
// .env file. Variables are prefixed with POSTOS_, e.g. POSTOS_API_URL.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "postos"

type Config struct {
	APIURL       string        `envconfig:"API_URL" default:"http://127.0.0.1:8080"`
	IBGEURL      string        `envconfig:"IBGE_URL" default:"https://servicodados.ibge.gov.br/api/v1/localidades"`
	NominatimURL string        `envconfig:"NOMINATIM_URL" default:"https://nominatim.openstreetmap.org/"`
	UserID       int64         `envconfig:"USER_ID" default:"1"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Lang         string        `envconfig:"LANG" default:"pt"`
	Debug        bool          `envconfig:"DEBUG" default:"false"`

	ServerConfig
}

// ServerConfig only matters to the reference API server.
type ServerConfig struct {
	DBPath            string `envconfig:"DB" default:"postos.db"`
	Addr              string `envconfig:"ADDR" default:"127.0.0.1:8080"`
	RequestsPerMinute int    `envconfig:"RATE_LIMIT" default:"120"`
}

// Load reads the given .env files (".env" when none is given), then the
// environment. Variables already set in the environment win over the files,
// and missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}
