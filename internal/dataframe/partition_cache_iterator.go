package dataframe

import (
	"sync"

	"github.com/go-strata/strata"
	errors "github.com/go-strata/strata/errors"
)

// partitionCacheIterator produces Partitions from a PartitionCache, non-sorted
type partitionCacheIterator struct {
	cache        strata.PartitionCache
	keys         []string
	next         int
	lock         sync.Mutex
	endListeners []func()
}

// CreatePartitionCacheIterator produces Partitions from a PartitionCache,
// in the order given by keys. Iteration removes Partitions from the cache.
func CreatePartitionCacheIterator(cache strata.PartitionCache, keys []string) strata.PartitionIterator {
	return &partitionCacheIterator{
		cache:        cache,
		keys:         keys,
		next:         0,
		endListeners: []func(){},
	}
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (pci *partitionCacheIterator) OnEnd(onEnd func()) {
	pci.lock.Lock()
	defer pci.lock.Unlock()
	pci.endListeners = append(pci.endListeners, onEnd)
}

func (pci *partitionCacheIterator) HasNextPartition() bool {
	pci.lock.Lock()
	defer pci.lock.Unlock()
	return pci.next < len(pci.keys)
}

func (pci *partitionCacheIterator) NextPartition() (strata.Partition, func(), error) {
	pci.lock.Lock()
	defer pci.lock.Unlock()
	if pci.next >= len(pci.keys) {
		for _, l := range pci.endListeners {
			l()
		}
		pci.endListeners = []func(){}
		return nil, nil, errors.NoMorePartitionsError{}
	}
	p, err := pci.cache.Get(pci.keys[pci.next])
	if err != nil {
		return nil, nil, err
	}
	pci.next++
	return p, nil, nil
}
