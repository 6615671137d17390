package strata

// TaskType describes the type of a Task, used internally to control behaviour
type TaskType string

const (
	// NoOpTaskType indicates that this task does not manipulate data
	NoOpTaskType TaskType = "no_op"
	// ExtractTaskType indicates that this task sources data from a DataSource
	ExtractTaskType TaskType = "extract"
	// WithFieldTaskType indicates that this task defines a new field
	WithFieldTaskType TaskType = "with_field"
	// DropFieldTaskType indicates that this task removes fields
	DropFieldTaskType TaskType = "drop_field"
	// RenameFieldTaskType indicates that this task renames fields
	RenameFieldTaskType TaskType = "rename_field"
	// MapTaskType indicates that this task triggers a Map
	MapTaskType TaskType = "map"
	// FilterTaskType indicates that this task triggers a Filter
	FilterTaskType TaskType = "filter"
	// LimitTaskType indicates that this task caps the total number of Rows
	LimitTaskType TaskType = "limit"
	// DistinctTaskType indicates that this task removes duplicate Rows
	DistinctTaskType TaskType = "distinct"
	// MaterializeTaskType indicates that this task forces computation of pending transformations, ending a Stage
	MaterializeTaskType TaskType = "materialize"
	// AccumulateTaskType indicates that this task triggers an Accumulation
	AccumulateTaskType TaskType = "accumulate"
	// CollectTaskType indicates that this task triggers a Collect
	CollectTaskType TaskType = "collect"
)
