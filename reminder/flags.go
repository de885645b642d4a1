package reminder

import (
	"errors"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Flags is the little persisted key-value state the scheduler lives off:
// permission, pause, and one last-shown date per slot. Values are plain
// strings ("true", "2024-01-10"). Read-modify-write is unguarded; the
// process is the only writer by construction.
type Flags interface {
	Get(key string) string
	Set(key, value string) error
	Delete(key string) error
}

type diskvFlags struct {
	d *diskv.Diskv
}

// OpenFlags opens (creating if absent) the flag store under basePath,
// one file per flag.
func OpenFlags(basePath string) (Flags, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &diskvFlags{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 64 * 1024,
	})}, nil
}

func (f *diskvFlags) Get(key string) string {
	val, err := f.d.Read(key)
	if err != nil {
		// absent flag reads as empty
		return ""
	}
	return string(val)
}

func (f *diskvFlags) Set(key, value string) error {
	return f.d.Write(key, []byte(value))
}

func (f *diskvFlags) Delete(key string) error {
	err := f.d.Erase(key)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
