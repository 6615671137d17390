package jsonl

import (
	"strings"

	"github.com/go-strata/strata"
	"github.com/tidwall/gjson"
)

// fieldTree is the nested shape of a Schema's field paths, used to drive
// the extraction of declared fields from parsed JSON. A nil subtree marks
// a leaf, whose value is extracted as-is.
type fieldTree map[string]fieldTree

// buildFieldTree converts a Schema's dotted field paths into a fieldTree
func buildFieldTree(schema strata.Schema) fieldTree {
	root := fieldTree{}
	for _, name := range schema.FieldNames() {
		segments := strings.Split(name, ".")
		cur := root
		for i, segment := range segments {
			if i == len(segments)-1 {
				if _, ok := cur[segment]; !ok {
					cur[segment] = nil // a leaf, unless a child path upgrades it later
				}
				break
			}
			child := cur[segment]
			if child == nil {
				child = fieldTree{}
				cur[segment] = child
			}
			cur = child
		}
	}
	return root
}

// extractDoc copies declared fields out of parsed JSON, producing a
// (non-normalized) nested document. Missing values are left absent, and
// fields addressed through an array of documents are extracted from
// every element of the array.
func extractDoc(tree fieldTree, json gjson.Result) map[string]interface{} {
	doc := make(map[string]interface{}, len(tree))
	for name, children := range tree {
		val := json.Get(name)
		if !val.Exists() || val.Type == gjson.Null {
			continue
		}
		switch {
		case children == nil:
			doc[name] = val.Value()
		case val.IsArray():
			elems := val.Array()
			arr := make([]interface{}, 0, len(elems))
			for _, elem := range elems {
				if elem.IsObject() {
					arr = append(arr, extractDoc(children, elem))
				} else {
					arr = append(arr, elem.Value())
				}
			}
			doc[name] = arr
		case val.IsObject():
			doc[name] = extractDoc(children, val)
		default:
			doc[name] = val.Value()
		}
	}
	return doc
}
