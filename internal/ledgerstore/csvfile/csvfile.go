// Package csvfile stores each user's ledger as a flat CSV file named
// data_<user>.csv inside one directory.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"healthyledger/internal/core"
	"healthyledger/internal/ledgerstore"
)

const (
	filePrefix = "data_"
	fileSuffix = ".csv"
)

var _ ledgerstore.Backend = (*Store)(nil)

type Store struct {
	dir string
}

// New returns a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("csv store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("csv store: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the file backing user's ledger.
func (s *Store) Path(user string) (string, error) {
	id, err := core.NormalizeUserID(user)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, filePrefix+id+fileSuffix), nil
}

func (s *Store) Load(ctx context.Context, user string) (core.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.Path(user)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return core.Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	l, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return l, nil
}

// Save writes the whole ledger to a temp file and renames it over the old
// one, so readers never see a half-written file.
func (s *Store) Save(ctx context.Context, user string, l core.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		return err
	}
	path, err := s.Path(user)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-"+filePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if err := Write(tmp, l); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// ListUsers returns the users with a data file, sorted.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	var users []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		user := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		if _, err := core.NormalizeUserID(user); err != nil {
			continue
		}
		users = append(users, user)
	}
	sort.Strings(users)
	return users, nil
}

// Read decodes a ledger in the tabular CSV format.
func Read(r io.Reader) (core.Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return ledgerstore.DecodeRows(rows)
}

// Write encodes a ledger in the tabular CSV format, header first.
func Write(w io.Writer, l core.Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(ledgerstore.EncodeRows(l)); err != nil {
		return err
	}
	return cw.Error()
}
