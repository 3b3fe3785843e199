package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func newMemStore(t *testing.T, compress bool) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := NewStore(fs, "cache", compress)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, fs
}

func TestStore_PutGet(t *testing.T) {
	s, fs := newMemStore(t, false)
	key := "abcdef0123"

	size, compressed, err := s.Put(key, []byte("<pre>hi</pre>"))
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if compressed || size != int64(len("<pre>hi</pre>")) {
		t.Errorf("Put() = %d, %v", size, compressed)
	}

	path := filepath.Join("cache", "ab", key+".html")
	if ok, _ := afero.Exists(fs, path); !ok {
		t.Errorf("expected shard file %s", path)
	}

	got, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got) != "<pre>hi</pre>" {
		t.Errorf("Get() = %q", got)
	}

	// Same key, same content: idempotent.
	if _, _, err := s.Put(key, []byte("<pre>hi</pre>")); err != nil {
		t.Fatalf("second Put() error: %v", err)
	}
	files, _ := s.List()
	if len(files) != 1 {
		t.Errorf("List() = %v, want one file", files)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := newMemStore(t, false)
	_, err := s.Get("ffff")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Get() error = %v, want ErrNotExist", err)
	}
	if s.Exists("ffff") {
		t.Error("Exists() = true for a missing key")
	}
}

// failingFs fails every open of a path with the given suffix.
type failingFs struct {
	afero.Fs
	suffix string
	err    error
}

func (f failingFs) Open(name string) (afero.File, error) {
	if strings.HasSuffix(name, f.suffix) {
		return nil, f.err
	}
	return f.Fs.Open(name)
}

func TestStore_GetReportsCompressedReadFailure(t *testing.T) {
	ioErr := errors.New("input/output error")
	s, err := NewStore(failingFs{Fs: afero.NewMemMapFs(), suffix: extZstd, err: ioErr}, "cache", true)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Get("abcdef0123")
	if !errors.Is(err, ioErr) {
		t.Errorf("Get() error = %v, want the compressed read failure", err)
	}
	if errors.Is(err, os.ErrNotExist) {
		t.Errorf("Get() reported a missing entry: %v", err)
	}
}

func TestStore_Compression(t *testing.T) {
	s, fs := newMemStore(t, true)
	small := []byte("<pre>small</pre>")
	large := []byte(strings.Repeat("<span>token</span>", CompressThreshold/10))

	if _, compressed, _ := s.Put("aa01", small); compressed {
		t.Error("small entry was compressed")
	}
	size, compressed, err := s.Put("bb02", large)
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if !compressed {
		t.Fatal("large entry was not compressed")
	}
	if size >= int64(len(large)) {
		t.Errorf("compressed size %d not smaller than %d", size, len(large))
	}
	if ok, _ := afero.Exists(fs, filepath.Join("cache", "bb", "bb02.html.zst")); !ok {
		t.Error("missing .html.zst file")
	}

	got, err := s.Get("bb02")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got) != string(large) {
		t.Error("round trip through zstd changed the content")
	}
}

func TestStore_SwitchingVariantRemovesStaleFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw, _ := NewStore(fs, "cache", false)
	defer func() { _ = raw.Close() }()
	zst, _ := NewStore(fs, "cache", true)
	defer func() { _ = zst.Close() }()

	large := []byte(strings.Repeat("x", CompressThreshold*2))
	if _, _, err := raw.Put("cc03", large); err != nil {
		t.Fatal(err)
	}
	if _, _, err := zst.Put("cc03", large); err != nil {
		t.Fatal(err)
	}
	files, _ := zst.List()
	if len(files) != 1 {
		t.Errorf("List() = %v, want a single variant", files)
	}
}

func TestStore_DeleteClearSize(t *testing.T) {
	s, fs := newMemStore(t, false)
	for _, k := range []string{"aa11", "aa22", "bb33"} {
		if _, _, err := s.Put(k, []byte("12345")); err != nil {
			t.Fatal(err)
		}
	}
	// Files outside shard directories are left alone by Clear.
	_ = afero.WriteFile(fs, filepath.Join("cache", IndexFile), []byte("db"), 0644)
	// Temp files are not entries.
	_ = afero.WriteFile(fs, filepath.Join("cache", "aa", "aa44.html.123.tmp"), []byte("partial"), 0644)

	if size, _ := s.Size(); size != 15 {
		t.Errorf("Size() = %d, want 15", size)
	}

	_ = s.Delete("aa11")
	if s.Exists("aa11") {
		t.Error("Delete() left the file")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if files, _ := s.List(); len(files) != 0 {
		t.Errorf("List() after Clear = %v", files)
	}
	if ok, _ := afero.Exists(fs, filepath.Join("cache", IndexFile)); !ok {
		t.Error("Clear() removed the index file")
	}
}
