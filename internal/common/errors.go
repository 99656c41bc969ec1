package common

import (
	"errors"
	"fmt"
)

// Domain errors - use errors.Is() to check
var (
	// Extraction errors
	ErrInvalidPDF = errors.New("invalid pdf")
	ErrEmptyText  = errors.New("Nenhum texto encontrado no PDF.")

	// Model service errors
	ErrModelCall     = errors.New("model call failed")
	ErrModelResponse = errors.New("unexpected model response")
)

// WrapInvalidPDF marks err as a rejected PDF upload.
func WrapInvalidPDF(detail string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrInvalidPDF, detail)
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidPDF, detail, err)
}

// WrapModelCall wraps a transport or API error from the completion service.
func WrapModelCall(provider string, err error) error {
	return fmt.Errorf("%s: %w: %w", provider, ErrModelCall, err)
}

func IsEmptyText(err error) bool {
	return errors.Is(err, ErrEmptyText)
}

func IsInvalidPDF(err error) bool {
	return errors.Is(err, ErrInvalidPDF)
}

func IsModelCall(err error) bool {
	return errors.Is(err, ErrModelCall)
}
