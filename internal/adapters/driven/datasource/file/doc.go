// Package file reads province data resources from a local directory.
//
// Each province is stored as <root>/<key>.json, for example
// ~/.sanumbers/data/western-cape.json. The package also provides a
// fsnotify-backed watcher that reports keys whose files changed.
package file
