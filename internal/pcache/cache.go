package pcache

import (
	"container/list"
	"fmt"
	"log"
	"os"
	"path"
	"sync"

	"github.com/docker/docker/pkg/locker"
	"github.com/go-strata/strata"
	"github.com/go-strata/strata/internal/partition"
	itypes "github.com/go-strata/strata/internal/types"
	"github.com/klauspost/compress/zstd"
)

// lru is an LRU cache for Partitions. Partitions are cached uncompressed
// until the uncompressed tier is full, then compressed in memory, then
// swapped to disk. Lock order is always pmap, recentUncompressedList,
// compressedPmap, recentCompressedList, disk.
type lru struct {
	config                     *LRUConfig
	compressor                 *zstd.Encoder
	decompressor               *zstd.Decoder
	plocks                     *locker.Locker
	pmapLock                   sync.Mutex
	pmap                       map[string]*list.Element
	compressedPmapLock         sync.Mutex
	compressedPmap             map[string]*list.Element
	recentUncompressedListLock sync.Mutex
	recentUncompressedList     *list.List // back is oldest, front is newest
	recentCompressedListLock   sync.Mutex
	recentCompressedList       *list.List // back is oldest, front is newest
	diskLock                   sync.Mutex
	diskSchemas                map[string]strata.Schema // current schema for each partition swapped to disk
	maxUncompressed            int
	maxCompressed              int
}

type cachedPartition struct {
	key   string
	value itypes.SerializablePartition
}

type cachedCompressedPartition struct {
	key    string
	value  []byte
	schema strata.Schema
}

// LRUConfig configures an LRU PartitionCache
type LRUConfig struct {
	InitialSize        int                        // the initial capacity of the cache, measured in partitions
	CompressedFraction float32                    // the fraction of cached partitions which are held compressed in memory
	DiskPath           string                     // the directory to use as swap space for partitions evicted from memory
	Serializer         strata.PartitionSerializer // serializes and compresses partition data which is swapped to disk
}

// NewLRU produces an LRU PartitionCache
func NewLRU(config *LRUConfig) strata.PartitionCache {
	if config.InitialSize < 5 {
		log.Panicf("LRUConfig.InitialSize %d must be greater than 5", config.InitialSize)
	}
	if config.CompressedFraction < 0 || config.CompressedFraction > 1 {
		log.Panicf("LRUConfig.CompressedFraction %f must be between 0 and 1", config.CompressedFraction)
	}
	if config.Serializer == nil {
		log.Panicf("LRUConfig.Serializer was nil")
	}
	maxUncompressed, maxCompressed := tierSizes(config.InitialSize, config.CompressedFraction)
	// init compressor/decompressor
	compressor, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		log.Fatalf("Unable to initialize compressor: %e", err)
	}
	decompressor, err := zstd.NewReader(nil)
	if err != nil {
		log.Fatalf("Unable to initialize decompressor: %e", err)
	}
	return &lru{
		compressor:             compressor,
		decompressor:           decompressor,
		config:                 config,
		plocks:                 locker.New(),
		pmap:                   make(map[string]*list.Element),
		compressedPmap:         make(map[string]*list.Element),
		recentUncompressedList: list.New(),
		recentCompressedList:   list.New(),
		diskSchemas:            make(map[string]strata.Schema),
		maxUncompressed:        maxUncompressed,
		maxCompressed:          maxCompressed,
	}
}

// tierSizes divides a total cache capacity into uncompressed and compressed tiers
func tierSizes(size int, compressedFraction float32) (maxUncompressed int, maxCompressed int) {
	maxUncompressed = int(float32(size) * (1 - compressedFraction))
	maxCompressed = size - maxUncompressed
	return
}

// Destroy discards all cached partitions, including any swapped to disk
func (c *lru) Destroy() {
	c.pmapLock.Lock()
	c.recentUncompressedListLock.Lock()
	c.pmap = make(map[string]*list.Element)
	c.recentUncompressedList.Init()
	c.recentUncompressedListLock.Unlock()
	c.pmapLock.Unlock()
	c.compressedPmapLock.Lock()
	c.recentCompressedListLock.Lock()
	c.compressedPmap = make(map[string]*list.Element)
	c.recentCompressedList.Init()
	c.recentCompressedListLock.Unlock()
	c.compressedPmapLock.Unlock()
	c.diskLock.Lock()
	for key := range c.diskSchemas {
		tempFilePath := path.Join(c.config.DiskPath, key)
		if err := os.Remove(tempFilePath); err != nil {
			log.Printf("Unable to remove file %s", tempFilePath)
		}
	}
	c.diskSchemas = make(map[string]strata.Schema)
	c.diskLock.Unlock()
	c.compressor.Close()
	c.decompressor.Close()
}

// Add caches a Partition under the given key, evicting the least-recently-used
// Partitions to the compressed tier if the uncompressed tier is full
func (c *lru) Add(key string, value strata.OperablePartition) {
	svalue, ok := value.(itypes.SerializablePartition)
	if !ok {
		log.Panicf("Partition %s is not serializable and cannot be cached", key)
	}
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)

	// update the uncompressed cache
	c.pmapLock.Lock()
	defer c.pmapLock.Unlock()

	// update the recent list
	c.recentUncompressedListLock.Lock()
	defer c.recentUncompressedListLock.Unlock()
	e := c.recentUncompressedList.PushFront(&cachedPartition{
		key:   key,
		value: svalue,
	})
	c.pmap[key] = e

	// if we're full, it can only be because the uncompressed
	// cache has grown, so let's just check that one
	for c.recentUncompressedList.Len() > c.maxUncompressed {
		toRemove := c.recentUncompressedList.Back()
		c.recentUncompressedList.Remove(toRemove)
		evicted := toRemove.Value.(*cachedPartition)
		delete(c.pmap, evicted.key)
		c.evictToCompressedMemory(evicted)
	}
}

// Get removes the partition from the caches and returns it, if present. Returns an error otherwise.
func (c *lru) Get(key string) (value strata.OperablePartition, err error) {
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)
	value, err = c.getFromCache(key)
	if err != nil {
		value, err = c.getFromCompressedCache(key)
		if err != nil {
			value, err = c.getFromDisk(key)
			if err != nil {
				return nil, err
			}
		}
	}
	return
}

// CurrentSize returns the number of partitions currently held in memory
func (c *lru) CurrentSize() int {
	c.recentUncompressedListLock.Lock()
	size := c.recentUncompressedList.Len()
	c.recentUncompressedListLock.Unlock()
	c.recentCompressedListLock.Lock()
	size += c.recentCompressedList.Len()
	c.recentCompressedListLock.Unlock()
	return size
}

// Resize scales the capacity of this cache relative to the number of
// partitions it currently holds, evicting partitions which no longer fit
// in memory to disk. Returns true iff the capacity changed.
func (c *lru) Resize(frac float64) bool {
	if frac <= 0 {
		return false
	}
	newSize := int(float64(c.CurrentSize()) * frac)
	if newSize < 5 {
		newSize = 5
	}
	if newSize == c.maxUncompressed+c.maxCompressed {
		return false
	}
	c.pmapLock.Lock()
	c.recentUncompressedListLock.Lock()
	c.maxUncompressed, c.maxCompressed = tierSizes(newSize, c.config.CompressedFraction)
	for c.recentUncompressedList.Len() > c.maxUncompressed {
		toRemove := c.recentUncompressedList.Back()
		c.recentUncompressedList.Remove(toRemove)
		evicted := toRemove.Value.(*cachedPartition)
		delete(c.pmap, evicted.key)
		c.evictToCompressedMemory(evicted)
	}
	c.recentUncompressedListLock.Unlock()
	c.pmapLock.Unlock()
	// the compressed tier may have shrunk as well
	c.compressedPmapLock.Lock()
	c.recentCompressedListLock.Lock()
	for c.recentCompressedList.Len() > c.maxCompressed {
		toRemove := c.recentCompressedList.Back()
		c.recentCompressedList.Remove(toRemove)
		spilled := toRemove.Value.(*cachedCompressedPartition)
		delete(c.compressedPmap, spilled.key)
		c.evictToDisk(spilled)
	}
	c.recentCompressedListLock.Unlock()
	c.compressedPmapLock.Unlock()
	return true
}

// getFromCache removes the partition from the uncompressed cache and returns it, if present
func (c *lru) getFromCache(key string) (value strata.OperablePartition, err error) {
	c.pmapLock.Lock()
	defer c.pmapLock.Unlock()
	ve, ok := c.pmap[key]
	if ok {
		delete(c.pmap, key)
		c.recentUncompressedListLock.Lock()
		c.recentUncompressedList.Remove(ve)
		c.recentUncompressedListLock.Unlock()
		return ve.Value.(*cachedPartition).value, nil
	}
	return nil, fmt.Errorf("Partition %s is not in the cache", key)
}

// getFromCompressedCache removes the partition from the compressed cache and returns it, if present
func (c *lru) getFromCompressedCache(key string) (value strata.OperablePartition, err error) {
	c.compressedPmapLock.Lock()
	defer c.compressedPmapLock.Unlock()
	cve, cok := c.compressedPmap[key]
	if cok {
		delete(c.compressedPmap, key)
		c.recentCompressedListLock.Lock()
		c.recentCompressedList.Remove(cve)
		c.recentCompressedListLock.Unlock()
		evicted := cve.Value.(*cachedCompressedPartition)
		buff, err := c.decompressor.DecodeAll(evicted.value, nil)
		if err != nil {
			log.Panicf("Unable to decompress cached partition %s: %e", evicted.key, err)
		}
		decompressedPart, err := partition.FromBytes(buff, evicted.schema)
		if err != nil {
			panic(err)
		}
		return decompressedPart, nil
	}
	return nil, fmt.Errorf("Partition %s is not in the cache", key)
}

// getFromDisk removes the partition from the disk cache and returns it, if present
func (c *lru) getFromDisk(key string) (value strata.OperablePartition, err error) {
	c.diskLock.Lock()
	defer c.diskLock.Unlock()
	schema, ok := c.diskSchemas[key]
	if !ok {
		return nil, fmt.Errorf("Partition %s is not in the cache", key)
	}
	delete(c.diskSchemas, key)
	tempFilePath := path.Join(c.config.DiskPath, key)
	f, err := os.Open(tempFilePath)
	if err != nil {
		return nil, fmt.Errorf("Unable to load disk-swapped partition %s: %e", tempFilePath, err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			log.Printf("Unable to close file %s", tempFilePath)
		}
		err = os.Remove(tempFilePath)
		if err != nil {
			log.Printf("Unable to remove file %s", tempFilePath)
		}
	}()
	part, err := c.config.Serializer.Decompress(f, schema)
	if err != nil {
		log.Panicf("Unable to decompress disk-swapped partition %s: %e", tempFilePath, err)
	}
	return part, nil
}

// evictToCompressedMemory moves a partition evicted from the uncompressed
// tier into the compressed tier, spilling the least-recently-used compressed
// partitions to disk if the compressed tier is full. Callers must hold the
// uncompressed cache locks.
func (c *lru) evictToCompressedMemory(evicted *cachedPartition) {
	data, err := evicted.value.ToBytes()
	if err != nil {
		log.Panicf("Unable to serialize partition %s for caching: %v", evicted.key, err)
	}
	compressed := c.compressor.EncodeAll(data, nil)
	c.compressedPmapLock.Lock()
	defer c.compressedPmapLock.Unlock()
	c.recentCompressedListLock.Lock()
	defer c.recentCompressedListLock.Unlock()
	e := c.recentCompressedList.PushFront(&cachedCompressedPartition{
		key:    evicted.key,
		value:  compressed,
		schema: evicted.value.GetSchema(),
	})
	c.compressedPmap[evicted.key] = e
	for c.recentCompressedList.Len() > c.maxCompressed {
		toRemove := c.recentCompressedList.Back()
		c.recentCompressedList.Remove(toRemove)
		spilled := toRemove.Value.(*cachedCompressedPartition)
		delete(c.compressedPmap, spilled.key)
		c.evictToDisk(spilled)
	}
}

// evictToDisk swaps a partition evicted from the compressed tier to disk.
// Callers must hold the compressed cache locks.
func (c *lru) evictToDisk(spilled *cachedCompressedPartition) {
	data, err := c.decompressor.DecodeAll(spilled.value, nil)
	if err != nil {
		log.Panicf("Unable to decompress partition %s for disk swap: %e", spilled.key, err)
	}
	part, err := partition.FromBytes(data, spilled.schema)
	if err != nil {
		log.Panicf("Unable to deserialize partition %s for disk swap: %e", spilled.key, err)
	}
	c.diskLock.Lock()
	defer c.diskLock.Unlock()
	tempFilePath := path.Join(c.config.DiskPath, spilled.key)
	f, err := os.Create(tempFilePath)
	if err != nil {
		log.Panicf("Unable to create disk swap file %s: %e", tempFilePath, err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			log.Printf("Unable to close file %s", tempFilePath)
		}
	}()
	if err = c.config.Serializer.Compress(f, part); err != nil {
		log.Panicf("Unable to swap partition %s to disk: %e", spilled.key, err)
	}
	c.diskSchemas[spilled.key] = spilled.schema
}
