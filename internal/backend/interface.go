// Package backend builds the configured ledger store and optional event
// publisher from application settings.
package backend

import (
	"context"
	"errors"

	"healthyledger/internal/ledgerstore"
	"healthyledger/internal/services"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// CloseAll runs cleanups in the given order, skipping nil ones, and joins
// their errors.
func CloseAll(cleanups ...CleanupFunc) error {
	var errs []error
	for _, c := range cleanups {
		if c != nil {
			errs = append(errs, c())
		}
	}
	return errors.Join(errs...)
}

// BackendResult contains the store, the publisher (nil when events are
// disabled) and a cleanup function that closes both.
type BackendResult struct {
	Backend   ledgerstore.Backend
	Publisher services.Publisher
	Cleanup   CleanupFunc
}

// Close runs Cleanup if set.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
	// CreateStore builds only a store. The worker uses it for mirrors.
	CreateStore(ctx context.Context, config Config) (ledgerstore.Backend, CleanupFunc, error)
}

// Config holds everything needed to build a backend.
type Config struct {
	Type BackendType

	DataDir      string
	SQLiteDBPath string

	GoogleSpreadsheetID      string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Empty AMQPURL disables publishing.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

type BackendType string

const (
	MemoryBackend BackendType = "memory"
	CSVBackend    BackendType = "csv"
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, CSVBackend, SQLiteBackend, SheetsBackend:
		return true
	default:
		return false
	}
}
