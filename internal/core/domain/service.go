package domain

import "strings"

// ServiceRecord is one emergency contact entry for a town.
type ServiceRecord struct {
	// Category is a label such as "Police", "Fire", "Ambulance" or "Hospital".
	Category string `json:"category"`

	// Name is the display name of the service.
	Name string `json:"name"`

	// Phone is a dialable number. It is not necessarily digits only.
	Phone string `json:"phone"`

	// Address is free text.
	Address string `json:"address"`
}

// Validate returns ErrMalformedDataset if any field is blank.
func (r ServiceRecord) Validate() error {
	switch {
	case strings.TrimSpace(r.Category) == "":
		return fieldError("category")
	case strings.TrimSpace(r.Name) == "":
		return fieldError("name")
	case strings.TrimSpace(r.Phone) == "":
		return fieldError("phone")
	case strings.TrimSpace(r.Address) == "":
		return fieldError("address")
	}
	return nil
}

func fieldError(field string) error {
	return &RecordError{Field: field}
}

// RecordError reports the missing field of an invalid record.
type RecordError struct {
	Field string
}

func (e *RecordError) Error() string {
	return "service record: missing " + e.Field
}

// Unwrap lets errors.Is match ErrMalformedDataset.
func (e *RecordError) Unwrap() error {
	return ErrMalformedDataset
}
