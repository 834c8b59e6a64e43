package driving

import (
	"context"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

// ContactActionService provides actions on a service record for external actors.
// This is used by TUI and CLI adapters.
type ContactActionService interface {
	// Call dials the record's phone number.
	Call(ctx context.Context, record *domain.ServiceRecord) error

	// Copy copies the record's phone number to the clipboard.
	Copy(ctx context.Context, record *domain.ServiceRecord) error
}
