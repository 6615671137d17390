package stats

import (
	"sync"
	"time"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about a running Strata pipeline.
// Partition-level statistics are recorded by concurrent workers, so
// access to them is guarded by a lock.
type RunStatistics struct {
	started                     bool
	startTime                   time.Time
	totalRuntime                time.Duration
	partitionLock               sync.Mutex
	rowsProcessed               []int64
	partitionsProcessed         []int64
	recentPartitionRuntimes     []time.Duration // for rolling average of recent partition processing times
	recentPartitionRuntimesHead int
	stageRuntimes               []time.Duration // most recent runtime for each stage
	transformPhaseRuntimes      []time.Duration // most recent transform-phase runtime for each stage
	materializePhaseRuntimes    []time.Duration // most recent materialize-phase runtime for each stage

	// temp vars
	finished                    bool
	currentStageStartTime       time.Time
	currentTransformStartTime   time.Time
	currentMaterializeStartTime time.Time
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start(numStages int) {
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.rowsProcessed = make([]int64, numStages)
		rs.partitionsProcessed = make([]int64, numStages)
		rs.recentPartitionRuntimes = make([]time.Duration, statisticRollingWindows)
		rs.stageRuntimes = make([]time.Duration, numStages)
		rs.transformPhaseRuntimes = make([]time.Duration, numStages)
		rs.materializePhaseRuntimes = make([]time.Duration, numStages)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.finished = true
	rs.totalRuntime = time.Since(rs.startTime)
}

// StartStage tracks the beginning of a new Stage
func (rs *RunStatistics) StartStage() {
	rs.currentStageStartTime = time.Now()
}

// EndStage tracks the end of a Stage
func (rs *RunStatistics) EndStage(sidx int) {
	rs.stageRuntimes[sidx] = time.Since(rs.currentStageStartTime)
	rs.partitionLock.Lock()
	defer rs.partitionLock.Unlock()
	rs.recentPartitionRuntimes = make([]time.Duration, statisticRollingWindows)
	rs.recentPartitionRuntimesHead = 0
}

// StartTransform tracks the beginning of the transformation portion of a Stage
func (rs *RunStatistics) StartTransform() {
	rs.currentTransformStartTime = time.Now()
}

// EndTransform tracks the end of the transformation portion of a Stage
func (rs *RunStatistics) EndTransform(sidx int) {
	rs.transformPhaseRuntimes[sidx] = time.Since(rs.currentTransformStartTime)
}

// StartMaterialize tracks the beginning of the materialization portion of a Stage
func (rs *RunStatistics) StartMaterialize() {
	rs.currentMaterializeStartTime = time.Now()
}

// EndMaterialize tracks the end of the materialization portion of a Stage
func (rs *RunStatistics) EndMaterialize(sidx int) {
	rs.materializePhaseRuntimes[sidx] = time.Since(rs.currentMaterializeStartTime)
}

// RecordPartition tracks the processing of a single partition
func (rs *RunStatistics) RecordPartition(sidx int, numRows int, runtime time.Duration) {
	rs.partitionLock.Lock()
	defer rs.partitionLock.Unlock()
	rs.recentPartitionRuntimes[rs.recentPartitionRuntimesHead] = runtime
	rs.recentPartitionRuntimesHead = (rs.recentPartitionRuntimesHead + 1) % len(rs.recentPartitionRuntimes)
	rs.rowsProcessed[sidx] += int64(numRows)
	rs.partitionsProcessed[sidx]++
}

// GetStartTime returns the start time of the Strata pipeline
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the Strata pipeline
func (rs *RunStatistics) GetRuntime() time.Duration {
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of Rows which have been processed so far, counted by stage
func (rs *RunStatistics) GetNumRowsProcessed() []int64 {
	return rs.rowsProcessed
}

// GetNumPartitionsProcessed returns the number of Partitions which have been processed so far, counted by stage
func (rs *RunStatistics) GetNumPartitionsProcessed() []int64 {
	return rs.partitionsProcessed
}

// GetCurrentPartitionProcessingTime returns a rolling average of partition processing time
func (rs *RunStatistics) GetCurrentPartitionProcessingTime() time.Duration {
	rs.partitionLock.Lock()
	defer rs.partitionLock.Unlock()
	var total time.Duration
	for _, d := range rs.recentPartitionRuntimes {
		total += d
	}
	return total / statisticRollingWindows
}

// GetStageRuntimes returns all recorded stage runtimes, from the most recent run of each Stage
func (rs *RunStatistics) GetStageRuntimes() []time.Duration {
	return rs.stageRuntimes
}

// GetStageTransformRuntimes returns all recorded stage transform-phase runtimes, from the most recent run of each Stage
func (rs *RunStatistics) GetStageTransformRuntimes() []time.Duration {
	return rs.transformPhaseRuntimes
}

// GetStageMaterializeRuntimes returns all recorded stage materialize-phase runtimes, from the most recent run of each Stage
func (rs *RunStatistics) GetStageMaterializeRuntimes() []time.Duration {
	return rs.materializePhaseRuntimes
}
