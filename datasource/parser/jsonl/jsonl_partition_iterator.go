package jsonl

import (
	"bufio"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/datasource"
	"github.com/tidwall/gjson"
)

type jsonlFilePartitionIterator struct {
	parser              *Parser
	scanner             *bufio.Scanner
	hasNext             bool
	source              strata.DataSource
	schema              strata.Schema
	fields              fieldTree
	widestInitialSchema strata.Schema
	lock                sync.Mutex
	endListeners        []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (jsonli *jsonlFilePartitionIterator) OnEnd(onEnd func()) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	jsonli.endListeners = append(jsonli.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (jsonli *jsonlFilePartitionIterator) HasNextPartition() bool {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	return jsonli.hasNext
}

// NextPartition returns the next Partition if one is available, or an error
func (jsonli *jsonlFilePartitionIterator) NextPartition() (strata.Partition, func(), error) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	part := datasource.CreateBuildablePartition(jsonli.parser.PartitionSize(), jsonli.widestInitialSchema)
	// parse lines
	for {
		// If the partition is full, we're done
		if part.GetNumRows() == part.GetMaxRows() {
			return part, nil, nil
		}
		// Otherwise, grab another line from the file
		hasNext := jsonli.scanner.Scan()
		if !hasNext {
			jsonli.hasNext = false
			for _, l := range jsonli.endListeners {
				l()
			}
			jsonli.endListeners = []func(){}
			// TODO have the other side discard empty partitions
			return part, nil, nil
		}
		if err := jsonli.scanner.Err(); err != nil {
			return nil, nil, err
		}
		rowString := jsonli.scanner.Text()
		// skip blank and commented lines
		if len(strings.TrimSpace(rowString)) == 0 {
			continue
		}
		if jsonli.parser.conf.Comment != 0 && strings.HasPrefix(rowString, string(jsonli.parser.conf.Comment)) {
			continue
		}
		if !gjson.Valid(rowString) {
			log.Printf("Unable to parse line:\n\t%s", rowString)
			return nil, nil, fmt.Errorf("invalid JSON on line: %s", rowString)
		}
		doc := extractDoc(jsonli.fields, gjson.Parse(rowString))
		if err := datasource.NormalizeRowData(jsonli.schema, doc); err != nil {
			log.Printf("Unable to parse line:\n\t%s", rowString)
			return nil, nil, err
		}
		if err := part.AppendRowData(doc); err != nil {
			return nil, nil, err
		}
	}
}
