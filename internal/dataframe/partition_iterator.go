package dataframe

import (
	"sync"

	"github.com/go-strata/strata"
	errors "github.com/go-strata/strata/errors"
)

// partitionLoaderIterator produces Partitions from PartitionLoaders
type partitionLoaderIterator struct {
	partitionLoaders    []strata.PartitionLoader
	partitionGroup      strata.PartitionIterator
	parser              strata.DataSourceParser
	widestInitialSchema strata.Schema
	next                int
	lock                sync.Mutex
	endListeners        []func()
}

func createPartitionLoaderIterator(partitionLoaders []strata.PartitionLoader, parser strata.DataSourceParser, widestInitialSchema strata.Schema) strata.PartitionIterator {
	return &partitionLoaderIterator{
		partitionLoaders:    partitionLoaders,
		partitionGroup:      nil,
		parser:              parser,
		widestInitialSchema: widestInitialSchema,
		next:                0,
		endListeners:        []func(){},
	}
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (pli *partitionLoaderIterator) OnEnd(onEnd func()) {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	pli.endListeners = append(pli.endListeners, onEnd)
}

func (pli *partitionLoaderIterator) HasNextPartition() bool {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	return pli.next < len(pli.partitionLoaders) || (pli.partitionGroup != nil && pli.partitionGroup.HasNextPartition())
}

func (pli *partitionLoaderIterator) NextPartition() (strata.Partition, func(), error) {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	// grab the next group of partitions from the Loader iterator if necessary
	if pli.partitionGroup == nil || !pli.partitionGroup.HasNextPartition() {
		if pli.next >= len(pli.partitionLoaders) {
			for _, l := range pli.endListeners {
				l()
			}
			pli.endListeners = []func(){}
			return nil, nil, errors.NoMorePartitionsError{}
		}
		l := pli.partitionLoaders[pli.next]
		pli.next++
		partGroup, err := l.Load(pli.parser, pli.widestInitialSchema) // load data into partitions wide enough to accommodate upcoming field adds
		if err != nil {
			return nil, nil, err
		}
		pli.partitionGroup = partGroup
	}
	// return the next partition from the existing group
	return pli.partitionGroup.NextPartition()
}
