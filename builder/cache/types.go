// Package cache persists rendered code highlights as content-addressed files,
// with a BoltDB index tracking usage for stats and garbage collection.
package cache

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// EntryMeta describes one cached render
type EntryMeta struct {
	Key        string `msgpack:"key"`
	Language   string `msgpack:"language"`
	Theme      string `msgpack:"theme"`
	Size       int64  `msgpack:"size"` // bytes on disk
	Compressed bool   `msgpack:"compressed"`
	CreatedAt  int64  `msgpack:"created_at"`
	LastUsed   int64  `msgpack:"last_used"`
	Hits       int    `msgpack:"hits"`
}

// LastUsedTime returns LastUsed as a time
func (e EntryMeta) LastUsedTime() time.Time {
	return time.Unix(0, e.LastUsed)
}

// Stats holds cache statistics
type Stats struct {
	Entries       int            `msgpack:"entries"`
	StoreFiles    int            `msgpack:"store_files"`
	StoreBytes    int64          `msgpack:"store_bytes"`
	Compressed    int            `msgpack:"compressed"`
	BuildCount    int            `msgpack:"build_count"`
	LastGC        int64          `msgpack:"last_gc"`
	SchemaVersion int            `msgpack:"schema_version"`
	ByLanguage    map[string]int `msgpack:"by_language"`
	// Runtime counters for the current process
	Hits   int64 `msgpack:"hits"`
	Misses int64 `msgpack:"misses"`
	Writes int64 `msgpack:"writes"`
}

// Constants for compression
const (
	CompressThreshold = 8 * 1024 // entries below this stay raw
	SchemaVersion     = 1
)

// Encode serializes a value to msgpack bytes
func Encode(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode deserializes msgpack bytes to a value
func Decode(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
