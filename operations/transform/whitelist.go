package transform

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-strata/strata"
)

// WhitelistOptions configure Whitelist
type WhitelistOptions struct {
	FlushInterval int  // materialize after this many consecutive drops, bounding the depth of the pending operation chain. Defaults to 10
	DisableFlush  bool // iff true, never materialize between drops
}

func ensureDefaultWhitelistOptionsValues(opts *WhitelistOptions) {
	if opts.FlushInterval == 0 {
		opts.FlushInterval = 10
	}
}

// WhitelistResolution is the outcome of resolving a whitelist request
// against a Schema
type WhitelistResolution struct {
	KeepRoots      []string        // the surviving requested paths, descendants collapsed into requested ancestors, in first-occurrence order
	Drops          []string        // the paths to drop, in depth-first document order
	SelectsNothing bool            // true iff no requested path exists in the Schema
	Notices        []strata.Notice // diagnostics recorded while resolving
}

// isPathAncestor returns true iff ancestor addresses a field which encloses
// the field addressed by path. Paths are compared segment-wise, so "a.b" is
// an ancestor of "a.b.c" but not of "a.bc"
func isPathAncestor(ancestor string, path string) bool {
	return len(path) > len(ancestor) && strings.HasPrefix(path, ancestor) && path[len(ancestor)] == '.'
}

// ResolveWhitelist resolves a whitelist request against a Schema, producing
// the set of requested paths to keep and the set of Schema paths to drop.
// Requested paths which do not exist in the Schema are discarded, and when a
// path and its descendant are both requested, the descendant collapses into
// the ancestor. Diagnostics are logged as they arise, and retained in the
// resolution so that callers can inspect them.
func ResolveWhitelist(schema strata.Schema, paths []string) *WhitelistResolution {
	resolution := &WhitelistResolution{}
	warn := func(format string, args ...interface{}) {
		n := strata.Notice{Level: strata.WarnNoticeLevel, Message: fmt.Sprintf(format, args...)}
		log.Printf("%s: %s", strata.NoticeLevelToString(n.Level), n.Message)
		resolution.Notices = append(resolution.Notices, n)
	}
	// de-duplicate the requested paths, preserving first-occurrence order,
	// and discard those which do not exist in the Schema
	seen := make(map[string]bool)
	surviving := make([]string, 0, len(paths))
	for _, name := range paths {
		if seen[name] {
			continue
		}
		seen[name] = true
		if !schema.HasField(name) {
			warn("Field %s is not found", name)
			continue
		}
		surviving = append(surviving, name)
	}
	fieldNames := schema.FieldNames()
	if len(surviving) == 0 {
		warn("No fields to select %v. No intersections with %v. Returning an empty DataFrame.", paths, fieldNames)
		resolution.SelectsNothing = true
		return resolution
	}
	// requested paths which enclose other requested paths are roots, and
	// consume their requested descendants
	isRoot := make(map[string]bool)
	roots := make([]string, 0)
	for _, a := range surviving {
		for _, b := range surviving {
			if isPathAncestor(a, b) {
				if !isRoot[a] {
					isRoot[a] = true
					roots = append(roots, a)
				}
				break
			}
		}
	}
	if len(roots) > 0 {
		warn("Root elements found %v. Be careful!! Child elements will be ignored!", roots)
	}
	added := make(map[string]bool)
	for _, name := range surviving {
		// a path consumed by a root is replaced by its shortest requested
		// ancestor, exactly once, at the position of its first occurrence
		replacement := name
		for _, root := range roots {
			if isPathAncestor(root, replacement) {
				replacement = root
			}
		}
		if !added[replacement] {
			added[replacement] = true
			resolution.KeepRoots = append(resolution.KeepRoots, replacement)
		}
	}
	// a Schema path survives when a keep-root addresses it, a field it
	// encloses, or a field which encloses it. Everything else is dropped.
	for _, field := range fieldNames {
		keep := false
		for _, root := range resolution.KeepRoots {
			if root == field || isPathAncestor(root, field) || isPathAncestor(field, root) {
				keep = true
				break
			}
		}
		if !keep {
			resolution.Drops = append(resolution.Drops, field)
		}
	}
	log.Printf("Fields to drop: %v", resolution.Drops)
	return resolution
}

// Whitelist retains only the requested fields, dropping every other field
// from the Schema and from every document. Requested fields which do not
// exist are ignored, and if none of them exist the result is an empty
// DataFrame with an unchanged Schema.
func Whitelist(df strata.DataFrame, paths ...string) (strata.DataFrame, error) {
	return WhitelistWithOptions(df, nil, paths...)
}

// WhitelistWithOptions is Whitelist with explicit options
func WhitelistWithOptions(df strata.DataFrame, opts *WhitelistOptions, paths ...string) (strata.DataFrame, error) {
	if opts == nil {
		opts = &WhitelistOptions{}
	}
	ensureDefaultWhitelistOptionsValues(opts)
	resolution := ResolveWhitelist(df.GetSchema(), paths)
	if resolution.SelectsNothing {
		return df.To(Limit(0))
	}
	ops := make([]*strata.DataFrameOperation, 0, len(resolution.Drops))
	for i, name := range resolution.Drops {
		ops = append(ops, Drop(name))
		// long chains of nested-field projections overwhelm query planners,
		// so materialize periodically while dropping
		if !opts.DisableFlush && (i+1)%opts.FlushInterval == 0 {
			ops = append(ops, Materialize())
		}
	}
	return df.To(ops...)
}
