package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/gommon/random"
)

// ReceiptStore stores an uploaded receipt and returns a stable reference
// that can be served back to clients later.
type ReceiptStore interface {
	Save(ctx context.Context, r io.Reader, filename string) (string, error)
}

// DiskStore keeps receipts as plain files under a single directory and
// references them as /uploads/<name>.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

func (s *DiskStore) Save(ctx context.Context, r io.Reader, filename string) (string, error) {
	// strip any path the client sent along, keep the extension
	name := fmt.Sprintf("%d-%s-%s", time.Now().Unix(), random.String(8, random.Alphanumeric), filepath.Base(filename))

	file, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
