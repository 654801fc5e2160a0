// Package client exposes the typed wrapper object model over the gateway.
//
// Each wrapper ([Project], [Dataset], [Image], [Screen], [Plate], [Well],
// [Folder]) holds one remote object projection plus a reference back to the
// [Client] facade, and translates high-level calls ("images in this dataset
// tagged X") into gateway queries, bulk link/unlink operations and facility
// calls. All annotatable wrappers share the same tag, key/value, comment,
// file and table operations.
//
// Collections returned from hierarchy traversals are deduplicated by remote
// ID and sorted ascending, so flattening a project or plate never yields the
// same image twice.
package client
