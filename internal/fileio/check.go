package fileio

import (
	"errors"
	"io/fs"
	"os"

	"github.com/shinji-kodama/file-echo/internal/logger"
	"github.com/shinji-kodama/file-echo/internal/model"
)

// Check validates a user-supplied path in two steps: existence, then type.
// Symlinks are followed, so a link to a regular file passes.
//
// Any stat failure counts as "does not exist", including permission errors
// on a parent directory; the underlying error is kept in the returned
// *model.ValidationError for verbose logging.
//
// Check does not open the file. The caller opens it later with Open, and
// Open reports a *model.OpenError if the entry changed in between.
func Check(path string) (model.FileTarget, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("stat %s: %v", path, err)
		} else {
			logger.Warn("stat %s: %v", path, err)
		}
		return model.FileTarget{}, &model.ValidationError{
			Path:   path,
			Reason: model.ReasonNotExist,
			Err:    err,
		}
	}

	if !info.Mode().IsRegular() {
		logger.Debug("%s has mode %s", path, info.Mode())
		return model.FileTarget{}, &model.ValidationError{
			Path:   path,
			Reason: model.ReasonNotRegular,
		}
	}

	return model.FileTarget{Path: path, Size: info.Size()}, nil
}
