package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-twilio-tools/internal/twilio"
)

// archiveFileMode is the mode of downloaded recordings.
const archiveFileMode = 0644

// prepareArchive makes sure dir is a directory, creating it (but not its
// parents) when missing.
func prepareArchive(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%s: %w", dir, ErrInvalidArchivePath)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.Mkdir(dir, 0750); err != nil { // #nosec G301 -- user archive dir
			return fmt.Errorf("%w %s: %w", ErrArchiveCreation, dir, err)
		}
		return nil
	default:
		return fmt.Errorf("%w %s: %w", ErrArchiveCreation, dir, err)
	}
}

// archivePath is where a recording is stored inside dir.
func archivePath(dir, sid string) string {
	return filepath.Join(dir, sid+twilio.RecordingExt)
}

// archiveRecording downloads a recording into dir unless its file already
// exists. Reports whether a download happened. A failed download leaves
// no file behind, so a later run retries it.
func archiveRecording(ctx context.Context, client Client, dir, sid string) (bool, error) {
	path := archivePath(dir, sid)

	// #nosec G304 -- path is built from the archive dir and a recording SID
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, archiveFileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("cannot create %s: %w", path, err)
	}

	_, err = client.DownloadRecording(ctx, sid, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to write %s: %w", path, closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		return false, fmt.Errorf("download recording %s: %w", sid, err)
	}
	return true, nil
}
