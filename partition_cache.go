package strata

// A PartitionCache is a cache for Partitions, used to buffer Partitions
// between Stages of execution. Implementations may transparently compress
// cached Partitions, or swap them to disk, to control memory usage.
type PartitionCache interface {
	Destroy()
	Add(key string, value OperablePartition)
	Get(key string) (value OperablePartition, err error) // removes the partition from the cache and returns it, if present. Returns an error otherwise.
	CurrentSize() int
	Resize(frac float64) bool // resize by a fraction RELATIVE TO THE CURRENT NUMBER OF ITEMS IN THE CACHE
}
