// Package render provides an HTML renderer over the engine's query API.
//
// The renderer is a reference consumer of the processor: it walks a surface's
// component tree from the root, resolves bound values through the surface
// data model, and emits escaped HTML. Template children are expanded once per
// element of the bound sequence, with each instance's data context anchored
// at that element's path — the same context that BuildUserAction receives
// when an action fires inside the item.
//
// The engine itself never renders; any other renderer (terminal, DOM
// adapter) can be written against the same query API.
package render
