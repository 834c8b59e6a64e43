package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
	"github.com/custodia-labs/sanumbers/internal/logger"
)

// Ensure ContactActionService implements the interface.
var _ driving.ContactActionService = (*ContactActionService)(nil)

// ErrPlatformUnavailable is returned when no platform adapter is configured.
var ErrPlatformUnavailable = fmt.Errorf("%w: dial and clipboard are not available", domain.ErrNotFound)

// ContactActionService provides call and copy actions on service records.
type ContactActionService struct {
	platform driven.Platform
}

// NewContactActionService creates a new contact action service.
// platform may be nil; actions then return ErrPlatformUnavailable.
func NewContactActionService(platform driven.Platform) *ContactActionService {
	return &ContactActionService{platform: platform}
}

// Call dials the record's phone number.
func (s *ContactActionService) Call(ctx context.Context, record *domain.ServiceRecord) error {
	phone, err := s.phone(record)
	if err != nil {
		return err
	}
	logger.Debug("Dialling %s (%s)", phone, record.Name)
	return s.platform.Dial(ctx, phone)
}

// Copy copies the record's phone number to the clipboard.
func (s *ContactActionService) Copy(_ context.Context, record *domain.ServiceRecord) error {
	phone, err := s.phone(record)
	if err != nil {
		return err
	}
	logger.Debug("Copying %s (%s)", phone, record.Name)
	return s.platform.Copy(phone)
}

func (s *ContactActionService) phone(record *domain.ServiceRecord) (string, error) {
	if record == nil {
		return "", fmt.Errorf("%w: record is nil", domain.ErrInvalidInput)
	}
	phone := strings.TrimSpace(record.Phone)
	if phone == "" {
		return "", fmt.Errorf("%w: record has no phone number", domain.ErrInvalidInput)
	}
	if s.platform == nil {
		return "", ErrPlatformUnavailable
	}
	return phone, nil
}
