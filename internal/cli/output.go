package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// outputFileMode is the mode of files handed to the user.
const outputFileMode = 0644

// writeFileAtomic streams content produced by write into path.
// The data goes to a temporary file in the same directory, renamed over
// path only once write and the flush succeed. On any failure the
// temporary file is removed and path is left untouched.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	// #nosec G304 -- user-specified output directory
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := f.Chmod(outputFileMode); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("cannot move output into place: %w", err)
	}
	return nil
}

// writeRow writes fields joined by bare commas. Values are not quoted:
// a value containing a comma shifts the following columns.
func writeRow(w io.Writer, fields ...string) error {
	_, err := io.WriteString(w, strings.Join(fields, ",")+"\n")
	return err
}
