package strata

// A Task is an action or transformation applied
// to Partitions of nested documents.
type Task interface {
	RunInitialize(sctx StageContext) error
	RunWorker(sctx StageContext, previous OperablePartition) ([]OperablePartition, error)
}
