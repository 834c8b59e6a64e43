// Package domain defines the core business entities for sanumbers.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ServiceRecord: One emergency contact (category, name, phone, address)
//   - ProvinceDataset: The ordered town to services mapping for a province
//   - SelectionState: The province/search/results state shown to the user
//   - AppSettings: Where province data is read from
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
