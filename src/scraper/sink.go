package scraper

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink stores one finished export file under key.
type Sink interface {
	Put(ctx context.Context, key string, body io.Reader) error
	Location(key string) string
}

// DirSink writes export files below a local directory.
type DirSink struct {
	Root string
}

func (d DirSink) Put(_ context.Context, key string, body io.Reader) error {
	path := d.Location(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("scraper: create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scraper: create %s: %w", path, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("scraper: write %s: %w", path, err)
	}
	return f.Close()
}

func (d DirSink) Location(key string) string {
	return filepath.Join(d.Root, filepath.FromSlash(key))
}
