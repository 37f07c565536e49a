package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"casinobot/domain/entities"

	"github.com/cespare/xxhash/v2"
	log "github.com/sirupsen/logrus"
)

// FileLedger stores every account in one JSON document:
//
//	{"<identity>": {"name": "<display name>", "balance": <int>}}
//
// A single mutex serializes all access. A unit of work holds it from Begin
// until Commit or Rollback.
type FileLedger struct {
	path            string
	startingBalance int64
	mu              sync.Mutex
}

// NewFileLedger creates a ledger over path without touching the file
func NewFileLedger(path string, startingBalance int64) *FileLedger {
	return &FileLedger{
		path:            path,
		startingBalance: startingBalance,
	}
}

// OpenFileLedger creates the ledger and checks the file at startup. A missing
// file is created empty. A corrupt file fails startup, unless failOpen is set,
// in which case it is moved aside to <path>.corrupt-<unix> and replaced with an
// empty ledger.
func OpenFileLedger(path string, startingBalance int64, failOpen bool) (*FileLedger, error) {
	l := NewFileLedger(path, startingBalance)

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _, err := l.read()
	if err == nil {
		return l, nil
	}

	var corruption *entities.StorageCorruptionError
	if !failOpen || !errors.As(err, &corruption) {
		return nil, err
	}

	quarantine := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
	if renameErr := os.Rename(path, quarantine); renameErr != nil {
		return nil, fmt.Errorf("failed to quarantine corrupt ledger: %w", renameErr)
	}
	log.WithFields(log.Fields{
		"path":       path,
		"quarantine": quarantine,
		"error":      err,
	}).Error("Ledger file was corrupt; moved aside and starting from an empty ledger")

	if _, err := l.write(entities.Ledger{}); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the ledger file location
func (l *FileLedger) Path() string {
	return l.path
}

// Load reads the whole mapping, creating an empty file when none exists
func (l *FileLedger) Load() (entities.Ledger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ledger, _, err := l.read()
	return ledger, err
}

// Save replaces the whole file atomically
func (l *FileLedger) Save(ledger entities.Ledger) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.write(ledger)
	return err
}

// GetOrCreate inserts the identity with the starting balance when absent,
// persists immediately and returns the whole mapping
func (l *FileLedger) GetOrCreate(identity, displayName string) (entities.Ledger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ledger, _, err := l.read()
	if err != nil {
		return nil, err
	}
	if _, ok := ledger[identity]; ok {
		return ledger, nil
	}

	ledger[identity] = &entities.Account{
		Identity:    identity,
		DisplayName: displayName,
		Balance:     l.startingBalance,
	}
	if _, err := l.write(ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

// Snapshot returns a copy of every account
func (l *FileLedger) Snapshot(ctx context.Context) (entities.Ledger, error) {
	return l.Load()
}

// read loads the file and its fingerprint. Callers hold l.mu.
func (l *FileLedger) read() (entities.Ledger, uint64, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		fingerprint, err := l.write(entities.Ledger{})
		if err != nil {
			return nil, 0, err
		}
		return entities.Ledger{}, fingerprint, nil
	}
	if err != nil {
		return nil, 0, l.corrupted(err)
	}

	ledger := entities.Ledger{}
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, 0, l.corrupted(err)
	}
	for identity, account := range ledger {
		if account == nil {
			return nil, 0, l.corrupted(fmt.Errorf("account %q is null", identity))
		}
		account.Identity = identity
	}

	return ledger, xxhash.Sum64(data), nil
}

// fingerprint hashes the file as it is now. A missing file hashes to zero.
func (l *FileLedger) fingerprint() (uint64, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger %s: %w", l.path, err)
	}
	return xxhash.Sum64(data), nil
}

// write replaces the file via a temp file and rename. Callers hold l.mu.
func (l *FileLedger) write(ledger entities.Ledger) (uint64, error) {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode ledger: %w", err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write temp ledger file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to sync temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temp ledger file: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		return 0, fmt.Errorf("failed to replace ledger file: %w", err)
	}

	return xxhash.Sum64(data), nil
}

func (l *FileLedger) corrupted(err error) error {
	log.WithFields(log.Fields{
		"path":  l.path,
		"error": err,
	}).Error("Ledger file is unreadable")
	return &entities.StorageCorruptionError{Path: l.path, Err: err}
}
