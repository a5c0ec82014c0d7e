package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/infectedparty/backend/internal/game"
)

// Config is the full configuration surface: bind address, the shared join
// secret, the fixed room size, and an optional catalog file overriding the
// built-in question and game-set lists.
type Config struct {
	Bind        string
	Port        int
	RoomKey     string
	Capacity    int
	PublicURL   string
	CatalogFile string
	Verbose     bool
}

func (c *Config) Validate() error {
	var errs error
	if c.Port < 1 || c.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port))
	}
	if c.RoomKey == "" {
		errs = multierr.Append(errs, errors.New("room key must not be empty"))
	}
	if c.Capacity < 2 {
		errs = multierr.Append(errs, fmt.Errorf("capacity must be at least 2: %d", c.Capacity))
	}
	if c.PublicURL != "" {
		if _, err := url.ParseRequestURI(c.PublicURL); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid public url: %w", err))
		}
	}
	return errs
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// JoinURL is the address encoded into the join QR code. The room key rides
// along as a query parameter so a scan is enough to join.
func (c *Config) JoinURL() string {
	base := c.PublicURL
	if base == "" {
		base = fmt.Sprintf("http://%s", c.Addr())
	}
	return fmt.Sprintf("%s?key=%s", base, url.QueryEscape(c.RoomKey))
}

// Catalog holds the two orderable content lists a round draws from.
type Catalog struct {
	Questions []string
	GameSets  []string
}

// LoadCatalog reads the catalog file if one was configured; missing keys fall
// back to the built-in defaults.
func LoadCatalog(path string) (Catalog, error) {
	catalog := Catalog{
		Questions: game.DefaultQuestions,
		GameSets:  game.DefaultGameSets,
	}
	if path == "" {
		return catalog, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if qs := v.GetStringSlice("questions"); len(qs) > 0 {
		catalog.Questions = qs
	}
	if sets := v.GetStringSlice("gameSets"); len(sets) > 0 {
		catalog.GameSets = sets
	}
	return catalog, nil
}
