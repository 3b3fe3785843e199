package cache

// BoltDB bucket names
const (
	BucketEntries = "entries" // {key} -> EntryMeta
	BucketMeta    = "meta"    // schema_version, build_count, last_gc

	KeySchemaVersion = "schema_version"
	KeyBuildCount    = "build_count"
	KeyLastGC        = "last_gc"
)

// IndexFile is the BoltDB file name inside the cache directory
const IndexFile = "index.db"

// AllBuckets returns all bucket names for initialization
func AllBuckets() []string {
	return []string{BucketEntries, BucketMeta}
}
