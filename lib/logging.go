package lib

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// SetupLogging sends log output to stderr and, when filename is set, also
// appends it to that file. The returned closer is nil when no file is used.
func SetupLogging(filename string) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stderr)
	if filename == "" {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return file, nil
}
