package backend

import (
	"errors"
	"fmt"

	"healthyledger/internal/config"
)

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}
	bt := BackendType(appConfig.DataBackend)
	if !bt.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	return Config{
		Type:                     bt,
		DataDir:                  appConfig.DataDir,
		SQLiteDBPath:             appConfig.SQLiteDBPath,
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		AMQPURL:                  appConfig.AMQPURL,
		AMQPExchange:             appConfig.AMQPExchange,
		AMQPQueue:                appConfig.AMQPQueue,
	}, nil
}

// MirrorConfig picks where the worker copies ledgers: the spreadsheet when
// Google credentials are present, otherwise CSV files in MirrorDir.
func MirrorConfig(appConfig *config.Config) Config {
	if appConfig.SheetsConfigured() && appConfig.DataBackend != config.BackendSheets {
		return Config{
			Type:                     SheetsBackend,
			GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
			GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
			GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		}
	}
	return Config{Type: CSVBackend, DataDir: appConfig.MirrorDir}
}

// Validate checks the fields the selected backend needs.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	switch c.Type {
	case CSVBackend:
		if c.DataDir == "" {
			return errors.New("data directory is required for csv backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return errors.New("SQLite database path is required for sqlite backend")
		}
	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			return errors.New("Google Spreadsheet ID is required for sheets backend")
		}
		if c.GoogleServiceAccountFile == "" && c.GoogleServiceAccountJSON == "" {
			return errors.New("either service account file or JSON must be provided for sheets backend")
		}
	}
	return nil
}

// GetBackendTypes returns all valid backend types.
func GetBackendTypes() []BackendType {
	return []BackendType{MemoryBackend, CSVBackend, SQLiteBackend, SheetsBackend}
}
