package config

import (
	"path/filepath"

	"github.com/Veraticus/spent/internal/model"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath          = "database.path"
	KeyLogLevel              = "logging.level"
	KeyLogFormat             = "logging.format"
	KeyImportDefaultCategory = "import.default_category"
	KeySheetsTokenFile       = "sheets.token_file"
)

// SetDefaults registers default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, "$HOME/.local/share/spent/spent.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyImportDefaultCategory, string(model.CategoryOther))
	v.SetDefault(KeySheetsTokenFile, "$HOME/.config/spent/sheets-token.json")
}

// DatabasePath returns the expanded database location.
func DatabasePath(v *viper.Viper) string {
	return filepath.Clean(ExpandPath(v.GetString(KeyDatabasePath)))
}

// DefaultImportCategory returns the configured category for imported rows,
// falling back to "other" when the configured value is not a category.
func DefaultImportCategory(v *viper.Viper) model.Category {
	c, err := model.ParseCategory(v.GetString(KeyImportDefaultCategory))
	if err != nil {
		return model.CategoryOther
	}
	return c
}
