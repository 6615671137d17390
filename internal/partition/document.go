package partition

import (
	"strings"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/errors"
)

// enclosingDocs locates every document which encloses the final segment of
// the given path, fanning out across arrays of structs. Documents which do
// not contain an intermediate segment are skipped, so the result may be
// empty. name is the full dot-delimited path, used for error reporting.
func enclosingDocs(doc map[string]interface{}, segments []string, name string) (docs []map[string]interface{}, err error) {
	docs = []map[string]interface{}{doc}
	for i, segment := range segments {
		next := make([]map[string]interface{}, 0, len(docs))
		for _, d := range docs {
			v, ok := d[segment]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case map[string]interface{}:
				next = append(next, t)
			case []interface{}:
				for _, e := range t {
					ed, ok := e.(map[string]interface{})
					if !ok {
						return nil, errors.NotStructError{Name: strings.Join(segments[:i+1], ".")}
					}
					next = append(next, ed)
				}
			default:
				return nil, errors.NotStructError{Name: strings.Join(segments[:i+1], ".")}
			}
		}
		docs = next
	}
	return
}

// docGet returns the value stored at a dot-delimited path within a document.
// A path which crosses an array of structs does not address a single value,
// and is rejected with a MultipleValuesError.
func docGet(doc map[string]interface{}, name string) (interface{}, error) {
	segments := strings.Split(name, ".")
	cur := doc
	for i, segment := range segments[:len(segments)-1] {
		v, ok := cur[segment]
		if !ok || v == nil {
			return nil, errors.NilValueError{Name: name}
		}
		switch t := v.(type) {
		case map[string]interface{}:
			cur = t
		case []interface{}:
			return nil, errors.MultipleValuesError{Name: name}
		default:
			return nil, errors.NotStructError{Name: strings.Join(segments[:i+1], ".")}
		}
	}
	v, ok := cur[segments[len(segments)-1]]
	if !ok || v == nil {
		return nil, errors.NilValueError{Name: name}
	}
	return v, nil
}

// docSet stores a value at a dot-delimited path within a document, creating
// missing intermediate documents along the way. A path which crosses an
// array of structs does not address a single value, and is rejected with a
// MultipleValuesError.
func docSet(doc map[string]interface{}, name string, value interface{}) error {
	segments := strings.Split(name, ".")
	cur := doc
	for i, segment := range segments[:len(segments)-1] {
		v, ok := cur[segment]
		if !ok || v == nil {
			child := make(map[string]interface{})
			cur[segment] = child
			cur = child
			continue
		}
		switch t := v.(type) {
		case map[string]interface{}:
			cur = t
		case []interface{}:
			return errors.MultipleValuesError{Name: name}
		default:
			return errors.NotStructError{Name: strings.Join(segments[:i+1], ".")}
		}
	}
	cur[segments[len(segments)-1]] = value
	return nil
}

// docDelete removes the value stored at a dot-delimited path from every
// document which encloses it, including documents reached through arrays of
// structs. Documents which do not contain the path are left untouched.
func docDelete(doc map[string]interface{}, name string) error {
	segments := strings.Split(name, ".")
	docs, err := enclosingDocs(doc, segments[:len(segments)-1], name)
	if err != nil {
		return err
	}
	last := segments[len(segments)-1]
	for _, d := range docs {
		delete(d, last)
	}
	return nil
}

// docRename renames the final segment of a dot-delimited path within every
// document which encloses it, preserving values. newName is a single path
// segment rather than a full path.
func docRename(doc map[string]interface{}, name string, newName string) error {
	segments := strings.Split(name, ".")
	docs, err := enclosingDocs(doc, segments[:len(segments)-1], name)
	if err != nil {
		return err
	}
	last := segments[len(segments)-1]
	for _, d := range docs {
		if v, ok := d[last]; ok {
			delete(d, last)
			d[newName] = v
		}
	}
	return nil
}

// docTransform rewrites the value stored at a dot-delimited path within
// every document which encloses it. Missing and nil values are skipped.
// tfn is handed the enclosing document alongside each value, so sibling
// fields can steer the transformation.
func docTransform(doc map[string]interface{}, name string, tfn strata.FieldTransform) error {
	segments := strings.Split(name, ".")
	docs, err := enclosingDocs(doc, segments[:len(segments)-1], name)
	if err != nil {
		return err
	}
	last := segments[len(segments)-1]
	for _, d := range docs {
		v, ok := d[last]
		if !ok || v == nil {
			continue
		}
		nv, err := tfn(d, v)
		if err != nil {
			return err
		}
		d[last] = nv
	}
	return nil
}
