package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to fpath atomically: the data goes to a temporary file
// in the same directory which is then renamed over the target.
func WriteFile(fpath string, data []byte, perm os.FileMode) error {
	cleanPath := filepath.Clean(fpath)
	dir := filepath.Dir(cleanPath)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(cleanPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %q: %w", dir, err)
	}

	tmpPath := tmp.Name()

	defer func() {
		_ = os.Remove(tmpPath)
	}()

	_, err = tmp.Write(data)
	if err != nil {
		_ = tmp.Close()

		return fmt.Errorf("writing temp file %q: %w", tmpPath, err)
	}

	err = tmp.Sync()
	if err != nil {
		_ = tmp.Close()

		return fmt.Errorf("syncing temp file %q: %w", tmpPath, err)
	}

	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("closing temp file %q: %w", tmpPath, err)
	}

	err = os.Chmod(tmpPath, perm)
	if err != nil {
		return fmt.Errorf("chmod temp file %q: %w", tmpPath, err)
	}

	err = os.Rename(tmpPath, cleanPath)
	if err != nil {
		return fmt.Errorf("renaming %q to %q: %w", tmpPath, cleanPath, err)
	}

	return nil
}
