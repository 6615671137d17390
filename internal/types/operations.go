package types

import "github.com/go-strata/strata"

// PartitionTransform transforms an OperablePartition into 0 or more OperablePartitions
type PartitionTransform func(strata.StageContext, strata.OperablePartition) ([]strata.OperablePartition, error)
