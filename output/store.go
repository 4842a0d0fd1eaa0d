package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/rafabd1/LiteFinder/core/secret"
	"github.com/rafabd1/LiteFinder/utils"
)

const (
	JSONReportName = "all_secrets.json"
	HTMLReportName = "all_secrets.html"
	lockFileName   = ".lock"

	lockRetryDelay = 50 * time.Millisecond
)

// Store keeps the accumulated reports of every scanned host under root,
// one directory per host.
type Store struct {
	root   string
	logger *Logger
}

// PersistResult describes what one merge changed on disk.
type PersistResult struct {
	Host        string
	JSONPath    string
	HTMLPath    string
	NewFindings []secret.Finding
	Pruned      int
	JSONWritten bool
	HTMLWritten bool
}

func NewStore(root string, logger *Logger) *Store {
	return &Store{root: root, logger: logger}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Dir(host string) string {
	return filepath.Join(s.root, host)
}

func (s *Store) JSONPath(host string) string {
	return filepath.Join(s.Dir(host), JSONReportName)
}

func (s *Store) HTMLPath(host string) string {
	return filepath.Join(s.Dir(host), HTMLReportName)
}

/*
   Merges record into the reports of host. Findings already present in any
   stored record are pruned; when nothing new remains both reports are left
   untouched. The JSON array is rewritten in full and the HTML document gets
   one more list item. The two writes are independent: a failure of one is
   reported together with the outcome of the other.
*/
func (s *Store) MergeAndPersist(ctx context.Context, host string, record secret.Record) (PersistResult, error) {
	result := PersistResult{
		Host:     host,
		JSONPath: s.JSONPath(host),
		HTMLPath: s.HTMLPath(host),
	}

	dir := s.Dir(host)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, utils.NewError(utils.StoreWriteError, "failed to create output directory", err)
	}

	unlock, err := s.lock(ctx, dir)
	if err != nil {
		return result, err
	}
	defer unlock()

	records, err := LoadRecords(result.JSONPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.debug("No previous report at %s", result.JSONPath)
		} else {
			s.warning("Ignoring unreadable report %s: %v", result.JSONPath, err)
		}
		records = nil
	}

	pruned, removed := record.Prune(secret.NewFindingSet(records...))
	result.Pruned = removed
	result.NewFindings = pruned.Findings

	if pruned.Empty() {
		s.debug("All %d findings for %s were already reported", removed, host)
		return result, nil
	}

	var errs []error

	if err := writeRecords(result.JSONPath, append(records, pruned)); err != nil {
		errs = append(errs, err)
	} else {
		result.JSONWritten = true
	}

	if _, err := appendHTML(result.HTMLPath, pruned); err != nil {
		errs = append(errs, err)
	} else {
		result.HTMLWritten = true
	}

	return result, errors.Join(errs...)
}

// lock takes the per-host lock file, waiting until ctx expires.
func (s *Store) lock(ctx context.Context, dir string) (func(), error) {
	fileLock := flock.New(filepath.Join(dir, lockFileName))

	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, utils.NewError(utils.StoreWriteError, "failed to lock "+dir, err)
	}
	if !locked {
		return nil, utils.NewError(utils.StoreWriteError, fmt.Sprintf("report directory %s is locked", dir), nil)
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			s.warning("Failed to release lock on %s: %v", dir, err)
		}
	}, nil
}

// Hosts lists the host directories that hold a JSON report.
func (s *Store) Hosts() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, utils.NewError(utils.StoreReadError, "failed to list "+s.root, err)
	}

	var hosts []string
	for _, entry := range entries {
		if entry.IsDir() && utils.FileExists(s.JSONPath(entry.Name())) {
			hosts = append(hosts, entry.Name())
		}
	}
	return hosts, nil
}

func (s *Store) debug(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(format, args...)
	}
}

func (s *Store) warning(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warning(format, args...)
	}
}
