// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The loader and filter are pure: they return values and never touch
// selection state. Selection is the only owner of that state.
package services
