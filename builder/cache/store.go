package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

const (
	extHTML = ".html"
	extZstd = ".html.zst"
)

// Store keeps one file per key under a one-level shard: base/key[0:2]/key.html
type Store struct {
	fs       afero.Fs
	basePath string
	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// NewStore creates a store rooted at basePath on fs. With compress set,
// entries of CompressThreshold bytes or more are written zstd-compressed.
func NewStore(fs afero.Fs, basePath string, compress bool) (*Store, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Store{
		fs:       fs,
		basePath: basePath,
		compress: compress,
		encoder:  encoder,
		decoder:  decoder,
	}, nil
}

// Close releases resources
func (s *Store) Close() error {
	_ = s.encoder.Close()
	s.decoder.Close()
	return nil
}

func (s *Store) shardPath(key string) string {
	if len(key) < 2 {
		return filepath.Join(s.basePath, key)
	}
	return filepath.Join(s.basePath, key[0:2], key)
}

// Put writes content for key and returns the bytes written and whether they
// were compressed. The file appears atomically: temp file, then rename.
// Concurrent writers of one key write identical bytes, so the last rename wins.
func (s *Store) Put(key string, content []byte) (int64, bool, error) {
	compressed := s.compress && len(content) >= CompressThreshold

	data := content
	path := s.shardPath(key) + extHTML
	stale := s.shardPath(key) + extZstd
	if compressed {
		data = s.encoder.EncodeAll(content, nil)
		path, stale = stale, path
	}

	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return 0, false, fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := afero.TempFile(s.fs, dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, false, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(tmpPath)
		return 0, false, fmt.Errorf("failed to write content: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = s.fs.Remove(tmpPath)
		return 0, false, fmt.Errorf("failed to close file: %w", err)
	}

	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return 0, false, fmt.Errorf("failed to rename file: %w", err)
	}

	// A key switching between raw and compressed must not leave the old copy.
	_ = s.fs.Remove(stale)

	return int64(len(data)), compressed, nil
}

// Get returns the content stored for key, raw or compressed
func (s *Store) Get(key string) ([]byte, error) {
	base := s.shardPath(key)

	data, err := afero.ReadFile(s.fs, base+extHTML)
	if err == nil {
		return data, nil
	}

	data, zerr := afero.ReadFile(s.fs, base+extZstd)
	if zerr != nil {
		if os.IsNotExist(err) && os.IsNotExist(zerr) {
			return nil, fmt.Errorf("entry not found: %s: %w", key, os.ErrNotExist)
		}
		if os.IsNotExist(err) {
			err = zerr
		}
		return nil, fmt.Errorf("failed to read entry %s: %w", key, err)
	}
	out, err := s.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress entry %s: %w", key, err)
	}
	return out, nil
}

// Exists checks if key has a stored file
func (s *Store) Exists(key string) bool {
	base := s.shardPath(key)
	for _, path := range []string{base + extHTML, base + extZstd} {
		if ok, _ := afero.Exists(s.fs, path); ok {
			return true
		}
	}
	return false
}

// Delete removes both variants of key
func (s *Store) Delete(key string) error {
	base := s.shardPath(key)
	_ = s.fs.Remove(base + extHTML)
	_ = s.fs.Remove(base + extZstd)
	return nil
}

// StoredFile is one entry file found on disk
type StoredFile struct {
	Key  string
	Size int64
}

// List returns every stored entry. Leftover temp files are skipped.
func (s *Store) List() ([]StoredFile, error) {
	if ok, _ := afero.DirExists(s.fs, s.basePath); !ok {
		return nil, nil
	}

	var files []StoredFile
	err := afero.Walk(s.fs, s.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if key, ok := entryKey(info.Name()); ok {
			files = append(files, StoredFile{Key: key, Size: info.Size()})
		}
		return nil
	})
	return files, err
}

// Size returns total bytes used by stored entries
func (s *Store) Size() (int64, error) {
	files, err := s.List()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total, nil
}

// Clear removes every shard directory under the store root
func (s *Store) Clear() error {
	infos, err := afero.ReadDir(s.fs, s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		if err := s.fs.RemoveAll(filepath.Join(s.basePath, info.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", info.Name(), err)
		}
	}
	return nil
}

func entryKey(name string) (string, bool) {
	switch {
	case strings.HasSuffix(name, extZstd):
		return strings.TrimSuffix(name, extZstd), true
	case strings.HasSuffix(name, extHTML):
		return strings.TrimSuffix(name, extHTML), true
	}
	return "", false
}
