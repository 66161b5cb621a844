package workspace

import (
	"errors"
	"io/fs"
	"os"

	verrors "github.com/factbench/verdiq/pkg/errors"
)

// BackupSuffix is appended to a file's path when a pre-overwrite copy
// is taken.
const BackupSuffix = ".backup"

// BackupAndWrite replaces the file at path with data, first copying any
// existing content to path+BackupSuffix. The backup write completes
// before the overwrite starts, so a failure partway through never
// leaves the previous content unrecoverable.
func BackupAndWrite(path string, data []byte) error {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := os.WriteFile(path+BackupSuffix, existing, filePermissions); err != nil {
			return verrors.WrapIO("write", path+BackupSuffix, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Nothing to back up.
	default:
		return verrors.WrapIO("read", path, err)
	}

	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return verrors.WrapIO("write", path, err)
	}
	return nil
}
