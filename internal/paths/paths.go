package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppDirName     = "coinassets"
	ConfigFileName = "coinassets.yaml"
	HistoryDBName  = "history.db"
	DirPerm        = 0755
	FilePerm       = 0644
)

// AtomicWrite writes data to path via a temporary file + rename so readers
// never see a partially written file. Unlike os.WriteFile it does not create
// the parent directory; a missing directory is reported as an error.
func AtomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// EnsureDir creates dir (and parents) if it does not exist yet.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, DirPerm)
}

// DataDir returns the per-user directory for coinassets state:
//   - Windows: %APPDATA%\coinassets
//   - Unix:    ~/.config/coinassets
//
// Falls back to os.TempDir()/coinassets if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
