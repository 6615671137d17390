package types

import (
	"github.com/go-strata/strata"
)

// An ExecutableDataFrame is a DataFrame that can be executed by a Strata engine
type ExecutableDataFrame interface {
	GetParent() strata.DataFrame
	Optimize() Plan                              // Optimize splits the DataFrame chain into stages which each share a schema. Each stage's execution will be blocked until the completion of the previous stage
	AnalyzeSource() (strata.PartitionMap, error) // AnalyzeSource returns a PartitionMap for the source data for this DataFrame
}
