package backend

import (
	"context"
	"errors"
	"fmt"

	"healthyledger/internal/amqp"
	"healthyledger/internal/ledgerstore"
	"healthyledger/internal/ledgerstore/csvfile"
	"healthyledger/internal/ledgerstore/google"
	"healthyledger/internal/ledgerstore/memory"
	applog "healthyledger/internal/log"
	"healthyledger/internal/storage"
)

// DefaultFactory implements Factory.
type DefaultFactory struct {
	logger *applog.Logger
}

func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{logger: logger.WithComponent(applog.ComponentBackend)}
}

// CreateBackend builds the store and, when an AMQP URL is configured, a
// publisher. A broker that cannot be reached is logged and skipped; saving
// entries must not depend on it.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, cleanup, err := f.CreateStore(ctx, config)
	if err != nil {
		return nil, err
	}
	result := &BackendResult{Backend: store}

	var publisher *amqp.Client
	if config.AMQPURL != "" {
		publisher, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			f.logger.Info("Initialized AMQP client", "exchange", config.AMQPExchange, "queue", config.AMQPQueue)
			result.Publisher = publisher
		}
	}

	result.Cleanup = func() error {
		var errs []error
		if publisher != nil {
			errs = append(errs, publisher.Close())
		}
		if cleanup != nil {
			errs = append(errs, cleanup())
		}
		return errors.Join(errs...)
	}
	return result, nil
}

func (f *DefaultFactory) CreateStore(ctx context.Context, config Config) (ledgerstore.Backend, CleanupFunc, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	switch config.Type {
	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return memory.New(), nil, nil
	case CSVBackend:
		store, err := csvfile.New(config.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize csv backend: %w", err)
		}
		f.logger.Info("Initialized csv backend", "data_dir", config.DataDir)
		return store, nil, nil
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return repo, repo.Close, nil
	case SheetsBackend:
		client, err := google.New(ctx, config.GoogleSpreadsheetID, google.Credentials{
			JSON: config.GoogleServiceAccountJSON,
			File: config.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Initialized Google Sheets backend")
		return client, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
