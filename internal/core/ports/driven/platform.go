package driven

import "context"

// Platform exposes the device capabilities a contact card needs.
type Platform interface {
	// Dial starts a phone call to number, typically by opening a tel: URI.
	Dial(ctx context.Context, number string) error

	// Copy places text on the system clipboard.
	Copy(text string) error
}
