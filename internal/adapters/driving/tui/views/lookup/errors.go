package lookup

import "errors"

// ErrNoActions is reported when a contact action is requested without an action service.
var ErrNoActions = errors.New("contact actions not available")
