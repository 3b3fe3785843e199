package cache

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Index records metadata for every stored entry in BoltDB
type Index struct {
	db *bolt.DB
}

// OpenIndex opens or creates the index database at path
func OpenIndex(path string) (*Index, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{
		Timeout:      2 * time.Second,
		FreelistType: bolt.FreelistArrayType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	ix := &Index{db: db}
	if err := ix.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return ix, nil
}

// Close closes the database
func (ix *Index) Close() error {
	return ix.db.Close()
}

// initSchema creates all buckets if they don't exist
func (ix *Index) initSchema() error {
	return ix.db.Update(func(tx *bolt.Tx) error {
		for _, name := range AllBuckets() {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}

		meta := tx.Bucket([]byte(BucketMeta))
		if meta.Get([]byte(KeySchemaVersion)) == nil {
			return meta.Put([]byte(KeySchemaVersion), encodeUint(SchemaVersion))
		}
		return nil
	})
}

// Commit writes new entries and applies usage counts in one transaction.
// hits maps keys to the number of reads since the last commit; unknown keys
// are ignored.
func (ix *Index) Commit(entries []EntryMeta, hits map[string]int, now time.Time) error {
	if len(entries) == 0 && len(hits) == 0 {
		return nil
	}
	ts := now.UnixNano()

	return ix.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketEntries))

		for _, e := range entries {
			if existing := b.Get([]byte(e.Key)); existing != nil {
				var old EntryMeta
				if err := Decode(existing, &old); err == nil {
					e.CreatedAt = old.CreatedAt
					e.Hits = old.Hits
				}
			}
			if e.CreatedAt == 0 {
				e.CreatedAt = ts
			}
			e.LastUsed = ts
			data, err := Encode(e)
			if err != nil {
				return fmt.Errorf("failed to encode entry %s: %w", e.Key, err)
			}
			if err := b.Put([]byte(e.Key), data); err != nil {
				return err
			}
		}

		for key, n := range hits {
			data := b.Get([]byte(key))
			if data == nil {
				continue
			}
			var e EntryMeta
			if err := Decode(data, &e); err != nil {
				continue // Skip corrupt entries
			}
			e.Hits += n
			e.LastUsed = ts
			updated, err := Encode(e)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(key), updated); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns the metadata of key, or nil if it is not indexed
func (ix *Index) Get(key string) (*EntryMeta, error) {
	var meta *EntryMeta
	err := ix.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(BucketEntries)).Get([]byte(key))
		if data == nil {
			return nil
		}
		var e EntryMeta
		if err := Decode(data, &e); err != nil {
			return err
		}
		meta = &e
		return nil
	})
	return meta, err
}

// All returns every indexed entry in key order. Corrupt records are skipped.
func (ix *Index) All() ([]EntryMeta, error) {
	var entries []EntryMeta
	err := ix.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketEntries)).ForEach(func(_, v []byte) error {
			var e EntryMeta
			if err := Decode(v, &e); err != nil {
				return nil
			}
			entries = append(entries, e)
			return nil
		})
	})
	return entries, err
}

// Delete removes keys from the index
func (ix *Index) Delete(keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return ix.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketEntries))
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear drops every entry and resets the counters
func (ix *Index) Clear() error {
	return ix.db.Update(func(tx *bolt.Tx) error {
		for _, name := range AllBuckets() {
			if tx.Bucket([]byte(name)) == nil {
				continue
			}
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return fmt.Errorf("failed to delete bucket %s: %w", name, err)
			}
		}
		for _, name := range AllBuckets() {
			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return tx.Bucket([]byte(BucketMeta)).Put([]byte(KeySchemaVersion), encodeUint(SchemaVersion))
	})
}

// IncrementBuildCount increments the build counter
func (ix *Index) IncrementBuildCount() error {
	return ix.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket([]byte(BucketMeta))
		count := decodeUint(meta.Get([]byte(KeyBuildCount)))
		return meta.Put([]byte(KeyBuildCount), encodeUint(count+1))
	})
}

// SetLastGC records the time of the last garbage collection
func (ix *Index) SetLastGC(t time.Time) error {
	return ix.db.Update(func(tx *bolt.Tx) error {
		v := make([]byte, 8)
		binary.BigEndian.PutUint64(v, uint64(t.Unix()))
		return tx.Bucket([]byte(BucketMeta)).Put([]byte(KeyLastGC), v)
	})
}

// counters reads the build count, last GC time and schema version
func (ix *Index) counters() (buildCount int, lastGC int64, schema int, err error) {
	err = ix.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket([]byte(BucketMeta))
		buildCount = int(decodeUint(meta.Get([]byte(KeyBuildCount))))
		schema = int(decodeUint(meta.Get([]byte(KeySchemaVersion))))
		if v := meta.Get([]byte(KeyLastGC)); len(v) == 8 {
			lastGC = int64(binary.BigEndian.Uint64(v))
		}
		return nil
	})
	return
}

func encodeUint(n uint32) []byte {
	v := make([]byte, 4)
	binary.BigEndian.PutUint32(v, n)
	return v
}

func decodeUint(v []byte) uint32 {
	if len(v) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32(v)
}
