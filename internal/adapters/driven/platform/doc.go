// Package platform implements driven.Platform for desktop terminals.
// Dial hands a tel: URI to the OS URL opener; Copy uses the system clipboard.
package platform
