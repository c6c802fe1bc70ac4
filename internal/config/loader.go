package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Loader loads .zipack configuration files.
type Loader struct {
	cfg *ini.File
}

// Load will traverse the directory hierarchy upwards to find the first ".zipack" file
// available and load its contents into the Loader.
//
// The name of the .zipack file is returned, empty if no file was found. A ".zipack" that
// is actually a directory is skipped.
func (l *Loader) Load(ctx context.Context) (string, error) {
	cur, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		path := filepath.Join(cur, ".zipack")
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			cfg, err := ini.Load(path)
			if err != nil {
				return path, err
			}

			l.cfg = cfg
			return path, nil
		} else if err != nil && !os.IsNotExist(err) {
			return "", err
		}

		if parent := filepath.Dir(cur); parent == cur {
			return "", nil
		} else {
			cur = parent
		}
	}
}

// DefaultLoader is the default Loader instance for package-level methods.
var DefaultLoader = &Loader{cfg: ini.Empty()}

// Load calls Loader.Load on the DefaultLoader instance.
func Load(ctx context.Context) (string, error) {
	return DefaultLoader.Load(ctx)
}
