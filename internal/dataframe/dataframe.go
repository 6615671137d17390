package dataframe

import (
	"github.com/go-strata/strata"
)

// A dataFrameImpl implements DataFrame internally for Strata
type dataFrameImpl struct {
	parent   *dataFrameImpl          // the parent DataFrame. Nil if this is the root.
	task     strata.Task             // the task represented by this DataFrame, executed to produce the next one
	taskType strata.TaskType         // a unique name for the type of task this DataFrame represents
	source   strata.DataSource       // the source of the data
	parser   strata.DataSourceParser // the parser for the source data
	schema   strata.Schema           // the schema of the data at this task
}

// CreateDataFrame is a factory for DataFrames. This function is not intended to be used directly,
// as DataFrames are returned by DataSource packages.
func CreateDataFrame(source strata.DataSource, parser strata.DataSourceParser, schema strata.Schema) strata.DataFrame {
	return &dataFrameImpl{
		parent:   nil,
		task:     &noOpTask{},
		taskType: strata.ExtractTaskType,
		source:   source,
		parser:   parser,
		schema:   schema,
	}
}

// GetSchema returns the Schema of a DataFrame
func (df *dataFrameImpl) GetSchema() strata.Schema {
	return df.schema
}

// GetDataSource returns the DataSource of a DataFrame
func (df *dataFrameImpl) GetDataSource() strata.DataSource {
	return df.source
}

// GetParser returns the DataSourceParser of a DataFrame
func (df *dataFrameImpl) GetParser() strata.DataSourceParser {
	return df.parser
}

// To is a "functional operations" factory method for DataFrames,
// chaining operations onto the current one(s).
func (df *dataFrameImpl) To(ops ...*strata.DataFrameOperation) (strata.DataFrame, error) {
	next := df
	// See https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis for details of approach
	for _, op := range ops {
		result, err := op.Do(next)
		if err != nil {
			return nil, err
		}
		next = &dataFrameImpl{
			parent:   next,
			source:   df.source,
			task:     result.Task,
			taskType: op.TaskType,
			parser:   df.parser,
			schema:   result.DataSchema,
		}
	}
	return next, nil
}
