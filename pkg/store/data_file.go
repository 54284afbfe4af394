package store

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
)

const defaultBufferSize = 64 * 1024

// DataFile replaces the venue data file wholesale on every write. Data is
// written to a sibling temp file, fsynced and renamed over the target, so
// a failed write leaves the previous contents intact.
type DataFile struct {
	config DataFileConfig
}

// NewDataFile creates the data file's directory if needed
func NewDataFile(config DataFileConfig) (*DataFile, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}
	if config.BufferSize <= 0 {
		config.BufferSize = defaultBufferSize
	}
	return &DataFile{config: config}, nil
}

// Write replaces the file contents with data
func (f *DataFile) Write(data []byte) error {
	tmpPath := f.config.FilePath + ".tmp"

	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	writer := bufio.NewWriterSize(file, f.config.BufferSize)
	if _, err := writer.Write(data); err != nil {
		return discard(file, tmpPath, err)
	}
	if err := writer.Flush(); err != nil {
		return discard(file, tmpPath, err)
	}
	if err := file.Sync(); err != nil {
		return discard(file, tmpPath, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, f.config.FilePath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Read returns the file contents. A missing file reads as empty.
func (f *DataFile) Read() ([]byte, error) {
	file, err := os.Open(f.config.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(bufio.NewReaderSize(file, f.config.BufferSize))
}

// Size returns the size of the file on disk, 0 if it does not exist
func (f *DataFile) Size() int64 {
	stat, err := os.Stat(f.config.FilePath)
	if err != nil {
		return 0
	}
	return stat.Size()
}

// Path returns the file path
func (f *DataFile) Path() string {
	return f.config.FilePath
}

func discard(file *os.File, path string, cause error) error {
	_ = file.Close()
	_ = os.Remove(path)
	return cause
}
