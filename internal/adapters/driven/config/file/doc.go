// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML settings in ~/.sanumbers/config.toml
package file
