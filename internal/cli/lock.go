package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

var errRunInProgress = errors.New("another crawl is already running in this data dir")

// lockRun takes the data dir's exclusive run lock without waiting.
func lockRun(dir string) (unlock func(), err error) {
	fl := flock.New(filepath.Join(dir, "notaries.lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, errRunInProgress
	}
	return func() { _ = fl.Unlock() }, nil
}
