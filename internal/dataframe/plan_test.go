package dataframe

import (
	"testing"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/schema"
	"github.com/stretchr/testify/require"
)

type planTestAccumulateTask struct {
	noOpTask
}

func (t *planTestAccumulateTask) GetAccumulatorFactory() strata.AccumulatorFactory {
	return func() strata.Accumulator { return nil }
}

type planTestCollectTask struct {
	noOpTask
	limit int64
}

func (t *planTestCollectTask) GetCollectionLimit() int64 {
	return t.limit
}

func createPlanTestSchema(t *testing.T) strata.Schema {
	s := schema.CreateSchema()
	_, err := s.CreateField("name", &strata.StringFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("score", &strata.IntFieldType{})
	require.Nil(t, err)
	return s
}

func planTestOp(taskType strata.TaskType, task strata.Task) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: taskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			return &strata.DataFrameOperationResult{Task: task, DataSchema: d.GetSchema().Clone()}, nil
		},
	}
}

func TestOptimizeSingleStage(t *testing.T) {
	s := createPlanTestSchema(t)
	df, err := CreateDataFrame(nil, nil, s).To(
		planTestOp(strata.MapTaskType, &noOpTask{}),
		planTestOp(strata.FilterTaskType, &noOpTask{}),
	)
	require.Nil(t, err)

	plan := df.(*dataFrameImpl).Optimize()
	require.Equal(t, 1, plan.Size())
	stage := plan.GetStage(0)
	require.False(t, stage.EndsInAccumulate())
	require.False(t, stage.EndsInCollect())
	require.False(t, stage.EndsInMaterialize())
	require.NotNil(t, stage.OutgoingSchema())
	require.Nil(t, stage.OutgoingSchema().Equals(s))
}

func TestOptimizeMaterializeSplitsStages(t *testing.T) {
	s := createPlanTestSchema(t)
	df, err := CreateDataFrame(nil, nil, s).To(
		planTestOp(strata.MapTaskType, &noOpTask{}),
		planTestOp(strata.MaterializeTaskType, &noOpTask{}),
		planTestOp(strata.FilterTaskType, &noOpTask{}),
	)
	require.Nil(t, err)

	plan := df.(*dataFrameImpl).Optimize()
	require.Equal(t, 2, plan.Size())
	require.True(t, plan.GetStage(0).EndsInMaterialize())
	require.False(t, plan.GetStage(1).EndsInMaterialize())
	// stage boundaries hand off the schema
	require.NotNil(t, plan.GetStage(0).OutgoingSchema())
	require.Nil(t, plan.GetStage(1).IncomingSchema().Equals(plan.GetStage(0).OutgoingSchema()))
}

func TestOptimizeTrailingMaterialize(t *testing.T) {
	s := createPlanTestSchema(t)
	df, err := CreateDataFrame(nil, nil, s).To(
		planTestOp(strata.MapTaskType, &noOpTask{}),
		planTestOp(strata.MaterializeTaskType, &noOpTask{}),
	)
	require.Nil(t, err)

	// a materialize at the end of the chain should not leave an empty stage behind
	plan := df.(*dataFrameImpl).Optimize()
	require.Equal(t, 1, plan.Size())
	require.True(t, plan.GetStage(0).EndsInMaterialize())
}

func TestOptimizeCollect(t *testing.T) {
	s := createPlanTestSchema(t)
	df, err := CreateDataFrame(nil, nil, s).To(
		planTestOp(strata.MapTaskType, &noOpTask{}),
		planTestOp(strata.CollectTaskType, &planTestCollectTask{limit: 4}),
	)
	require.Nil(t, err)

	plan := df.(*dataFrameImpl).Optimize()
	require.Equal(t, 1, plan.Size())
	stage := plan.GetStage(0)
	require.True(t, stage.EndsInCollect())
	require.EqualValues(t, 4, stage.GetCollectionLimit())
}

func TestOptimizeCollectIsTerminal(t *testing.T) {
	s := createPlanTestSchema(t)
	df, err := CreateDataFrame(nil, nil, s).To(
		planTestOp(strata.CollectTaskType, &planTestCollectTask{limit: 4}),
		planTestOp(strata.MapTaskType, &noOpTask{}),
	)
	require.Nil(t, err)

	require.Panics(t, func() {
		df.(*dataFrameImpl).Optimize()
	})
}

func TestOptimizeAccumulate(t *testing.T) {
	s := createPlanTestSchema(t)
	df, err := CreateDataFrame(nil, nil, s).To(
		planTestOp(strata.MapTaskType, &noOpTask{}),
		planTestOp(strata.AccumulateTaskType, &planTestAccumulateTask{}),
	)
	require.Nil(t, err)

	plan := df.(*dataFrameImpl).Optimize()
	require.Equal(t, 1, plan.Size())
	stage := plan.GetStage(0)
	require.True(t, stage.EndsInAccumulate())
	require.NotNil(t, stage.GetAccumulatorFactory())
}

func TestOptimizeAccumulateTaskMismatch(t *testing.T) {
	s := createPlanTestSchema(t)
	df, err := CreateDataFrame(nil, nil, s).To(
		planTestOp(strata.AccumulateTaskType, &noOpTask{}),
	)
	require.Nil(t, err)

	require.Panics(t, func() {
		df.(*dataFrameImpl).Optimize()
	})
}
