package partition

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/go-strata/strata"
	"github.com/pierrec/lz4"
)

// LZ4PartitionSerializer is a partition serializer which uses the lz4 compression algorithm
type LZ4PartitionSerializer struct {
	compressor         *lz4.Writer
	decompressor       *lz4.Reader
	reusableReadBuffer *bytes.Buffer
}

// NewLZ4PartitionSerializer instantiates a new LZ4PartitionSerializer
func NewLZ4PartitionSerializer() strata.PartitionSerializer {
	compressor := lz4.NewWriter(new(bytes.Buffer))
	decompressor := lz4.NewReader(new(bytes.Buffer))
	return &LZ4PartitionSerializer{
		compressor:         compressor,
		decompressor:       decompressor,
		reusableReadBuffer: new(bytes.Buffer),
	}
}

// Compress serializes and compresses partition data to a write stream
func (lz4pc *LZ4PartitionSerializer) Compress(w io.Writer, part strata.Partition) error {
	ipart, ok := part.(*partitionImpl)
	if !ok {
		return fmt.Errorf("Partition %s is not serializable", part.ID())
	}
	data, err := ipart.ToBytes()
	if err != nil {
		return err
	}
	lz4pc.compressor.Reset(w)
	if _, err = lz4pc.compressor.Write(data); err != nil {
		return err
	}
	return lz4pc.compressor.Close()
}

// Decompress decompresses and deserializes partition data from a read stream
func (lz4pc *LZ4PartitionSerializer) Decompress(r io.Reader, schema strata.Schema) (strata.OperablePartition, error) {
	lz4pc.decompressor.Reset(r)
	lz4pc.reusableReadBuffer.Reset()
	_, err := lz4pc.reusableReadBuffer.ReadFrom(lz4pc.decompressor)
	if err != nil {
		log.Panicf("Unable to decompress partition data: %e", err)
	}
	return FromBytes(lz4pc.reusableReadBuffer.Bytes(), schema)
}

// Destroy cleans up this LZ4PartitionSerializer
func (lz4pc *LZ4PartitionSerializer) Destroy() {
	lz4pc.reusableReadBuffer.Reset()
}
