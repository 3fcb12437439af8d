// Package datamodel provides the per-surface hierarchical data model and
// path resolution for the A2UI client engine.
//
// Every surface owns one data model: a tree of scalars, ordered sequences,
// and keyed maps that components bind into via path expressions. Paths are
// slash-separated; a leading slash anchors the path at the model root, and a
// relative path is resolved against a context path, typically inherited from
// an enclosing list item. Numeric segments index sequences.
//
// Resolution never fails: a missing key or out-of-range index yields an
// absent value, so a stale or malformed binding degrades to "no value" rather
// than crashing the renderer.
//
// The model is mutated wholesale, entry-by-entry at a named path, or through
// JSON Patch (RFC 6902) operations:
//
//	dm := datamodel.New()
//	dm.SetEntries("", entries)                 // replace the whole model
//	dm.Set("plant/category", "shrub")          // set one value, creating intermediates
//	err := dm.ApplyPatch(ops)                  // RFC 6902 delta
//	value, ok := dm.Get("plants/1/common_name")
package datamodel
