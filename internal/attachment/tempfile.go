package attachment

import (
	"os"
	"path/filepath"
)

// TempAllocator materializes previews as files under a scratch directory so
// external viewers can open them. Revoke deletes the file.
type TempAllocator struct {
	dir string
}

func NewTempAllocator(dir string) (*TempAllocator, error) {
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "site-admin-previews")
		if err != nil {
			return nil, err
		}
	}
	return &TempAllocator{dir: dir}, nil
}

func (a *TempAllocator) Allocate(name string, data []byte) (string, error) {
	f, err := os.CreateTemp(a.dir, "preview-*"+filepath.Ext(name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (a *TempAllocator) Revoke(handle string) {
	os.Remove(handle)
}

// Close removes the scratch directory and any previews still inside it.
func (a *TempAllocator) Close() error {
	return os.RemoveAll(a.dir)
}
