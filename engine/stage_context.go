package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-strata/strata"
)

type stageContextKey string

const nextStageWidestInitialSchema stageContextKey = "strata.engine.stageContextImpl.nextStageWidestInitialSchema"
const pCache stageContextKey = "strata.engine.stageContextImpl.pCache"
const pIncoming stageContextKey = "strata.engine.stageContextImpl.pIncoming"
const accumulator stageContextKey = "strata.engine.stageContextImpl.accumulator"
const targetPartitionSize stageContextKey = "strata.engine.stageContextImpl.targetPartitionSize"

type stageContextImpl struct {
	ctx context.Context
}

// TODO put all vals into a struct and just store/lookup the struct once when rehydrating a stagecontext from a context. saves on casts.
func createStageContext(ctx context.Context) strata.StageContext {
	return &stageContextImpl{ctx: ctx}
}

func (s *stageContextImpl) Deadline() (deadline time.Time, ok bool) {
	return s.ctx.Deadline()
}

func (s *stageContextImpl) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *stageContextImpl) Err() error {
	return s.ctx.Err()
}

func (s *stageContextImpl) Value(key interface{}) interface{} {
	return s.ctx.Value(key)
}

func (s *stageContextImpl) NextStageWidestInitialSchema() strata.Schema {
	if i := s.ctx.Value(nextStageWidestInitialSchema); i != nil {
		return i.(strata.Schema)
	}
	return nil
}

func (s *stageContextImpl) SetNextStageWidestInitialSchema(schema strata.Schema) error {
	if s.NextStageWidestInitialSchema() != nil {
		return fmt.Errorf("Cannot overwrite widest initial Schema for next Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, nextStageWidestInitialSchema, schema)
	return nil
}

func (s *stageContextImpl) PartitionCache() strata.PartitionCache {
	if c := s.ctx.Value(pCache); c != nil {
		return c.(strata.PartitionCache)
	}
	return nil
}

func (s *stageContextImpl) SetPartitionCache(cache strata.PartitionCache) error {
	if s.PartitionCache() != nil {
		return fmt.Errorf("Cannot overwrite PartitionCache for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, pCache, cache)
	return nil
}

func (s *stageContextImpl) IncomingPartitionIterator() strata.PartitionIterator {
	if i := s.ctx.Value(pIncoming); i != nil {
		return i.(strata.PartitionIterator)
	}
	return nil
}

func (s *stageContextImpl) SetIncomingPartitionIterator(i strata.PartitionIterator) error {
	if s.IncomingPartitionIterator() != nil {
		return fmt.Errorf("Cannot overwrite IncomingPartitionIterator for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, pIncoming, i)
	return nil
}

// Accumulator retrieves the Accumulator for this Stage (if it exists)
func (s *stageContextImpl) Accumulator() strata.Accumulator {
	if a := s.ctx.Value(accumulator); a != nil {
		return a.(strata.Accumulator)
	}
	return nil
}

// Configure the accumulator for the end of this stage
func (s *stageContextImpl) SetAccumulator(val strata.Accumulator) error {
	if s.Accumulator() != nil {
		return fmt.Errorf("Cannot overwrite Accumulator for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, accumulator, val)
	return nil
}

// TargetPartitionSize retrieves the TargetPartitionSize for this Stage (if it exists)
func (s *stageContextImpl) TargetPartitionSize() int {
	if t := s.ctx.Value(targetPartitionSize); t != nil {
		return t.(int)
	}
	return -1
}

// SetTargetPartitionSize configures the TargetPartitionSize for this Stage
func (s *stageContextImpl) SetTargetPartitionSize(val int) error {
	if s.TargetPartitionSize() > 0 {
		return fmt.Errorf("Cannot overwrite TargetPartitionSize for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, targetPartitionSize, val)
	return nil
}
