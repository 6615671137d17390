package types

import (
	"context"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/internal/stats"
)

// A Plan is an execution plan for a DataFrame
type Plan interface {
	Size() int                                                                                        // Size returns the number of stages
	GetStage(idx int) Stage                                                                           // GetStage returns a particular Stage in this Plan
	Parser() strata.DataSourceParser                                                                  // Parser returns this Plan's DataSourceParser
	Source() strata.DataSource                                                                        // Source returns this Plan's DataSource
	Execute(ctx context.Context, conf *PlanExecutorConfig, tracker *stats.RunStatistics) PlanExecutor // Execute creates a PlanExecutor given a particular configuration
}
