package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var logFormats = []string{"console", "json"}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DataFile) == "" {
		errs = append(errs, errors.New("data_file is required"))
	}
	if !identifier.MatchString(c.Names.Collection) {
		errs = append(errs, fmt.Errorf("names.collection %q is not a JavaScript identifier", c.Names.Collection))
	}
	if !identifier.MatchString(c.Names.Links) {
		errs = append(errs, fmt.Errorf("names.links %q is not a JavaScript identifier", c.Names.Links))
	}
	if c.Names.Collection == c.Names.Links {
		errs = append(errs, errors.New("names.collection and names.links must differ"))
	}
	if c.Loader.JSTimeout <= 0 {
		errs = append(errs, fmt.Errorf("loader.js_timeout must be positive, got %s", c.Loader.JSTimeout))
	}
	if !c.Backup.Disabled && strings.TrimSpace(c.Backup.Dir) == "" {
		errs = append(errs, errors.New("backup.dir is required unless backups are disabled"))
	}
	if c.Backup.Keep < 0 {
		errs = append(errs, fmt.Errorf("backup.keep must not be negative, got %d", c.Backup.Keep))
	}
	if c.Backup.Workers < 1 {
		errs = append(errs, fmt.Errorf("backup.workers must be at least 1, got %d", c.Backup.Workers))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of %v, got %q", logFormats, c.Log.Format))
	}

	return errors.Join(errs...)
}
