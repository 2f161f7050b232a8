package repository

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/afero"
)

func appendBytes(fs afero.Fs, path string, data []byte) (err error) {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	n, err := f.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	return err
}

// openIfExists opens path for reading. A missing file is reported as (nil, nil).
func openIfExists(fs afero.Fs, path string) (afero.File, error) {
	f, err := fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
