package validation

import (
	"fmt"
	"mime/multipart"
	"strings"
)

// FileField is the multipart field carrying the nota PDF.
const FileField = "file"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ValidatePredictUpload checks the shape of the form only. Content problems
// (empty or non-PDF files) are left to the PDF reader.
func ValidatePredictUpload(form *multipart.Form) ValidationErrors {
	var errors ValidationErrors

	if form == nil {
		return append(errors, ValidationError{
			Field:   FileField,
			Message: "field required",
		})
	}

	files := form.File[FileField]
	switch {
	case len(files) == 0:
		errors = append(errors, ValidationError{
			Field:   FileField,
			Message: "field required",
		})
	case len(files) > 1:
		errors = append(errors, ValidationError{
			Field:   FileField,
			Message: fmt.Sprintf("expected exactly one file, got %d", len(files)),
		})
	}

	return errors
}
