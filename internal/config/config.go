package config

import (
	"path/filepath"
	"time"
)

// Config is the root configuration of dramactl.
type Config struct {
	DataFile  string          `yaml:"data_file" env:"DRAMA_DATA_FILE" env-default:"data.js"`
	Names     NamesConfig     `yaml:"names"`
	Loader    LoaderConfig    `yaml:"loader"`
	Backup    BackupConfig    `yaml:"backup"`
	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Log       LogConfig       `yaml:"log"`
}

// NamesConfig holds the identifiers of the two declarations in the data file.
type NamesConfig struct {
	Collection string `yaml:"collection" env:"DRAMA_COLLECTION_NAME" env-default:"dramas"`
	Links      string `yaml:"links"      env:"DRAMA_LINKS_NAME"      env-default:"authorLinks"`
}

// LoaderConfig controls how loosely written files are decoded.
// Switches default to off because cleanenv treats a false value as unset.
type LoaderConfig struct {
	DisableJS bool          `yaml:"disable_js" env:"DRAMA_LOADER_DISABLE_JS"`
	JSTimeout time.Duration `yaml:"js_timeout" env:"DRAMA_LOADER_JS_TIMEOUT" env-default:"5s"`
}

// BackupConfig controls the compressed snapshots taken before each save.
type BackupConfig struct {
	Disabled bool   `yaml:"disabled" env:"DRAMA_BACKUP_DISABLED"`
	Dir      string `yaml:"dir"      env:"DRAMA_BACKUP_DIR"      env-default:".dramactl-backups"`
	Keep     int    `yaml:"keep"     env:"DRAMA_BACKUP_KEEP"     env-default:"20"`
	Workers  int    `yaml:"workers"  env:"DRAMA_BACKUP_WORKERS"  env-default:"4"`
}

// ThumbnailConfig holds the default template for bulk thumbnail generation.
type ThumbnailConfig struct {
	Template string `yaml:"template" env:"DRAMA_THUMBNAIL_TEMPLATE"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

// BackupDir resolves the backup directory against the data file's directory.
func (c *Config) BackupDir() string {
	if filepath.IsAbs(c.Backup.Dir) {
		return c.Backup.Dir
	}
	return filepath.Join(filepath.Dir(c.DataFile), c.Backup.Dir)
}
