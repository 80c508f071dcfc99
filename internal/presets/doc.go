// Package presets holds the model preset catalogs used by the copy-number
// engine and resolves the catalog for a run.
//
// Three catalogs are bundled as HCL files: two defaults that are always
// loaded and an "extra" catalog whose entries are opt-in. Resolution merges
// them in order, with later sources replacing earlier definitions of the same
// name.
package presets
