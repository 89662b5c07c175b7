package saveditems

import (
	"strings"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

const (
	maxProductIDLen = 128
	maxNoteLen      = 500
)

// SaveInput holds parameters for saving a product to the caller's list.
type SaveInput struct {
	ProductID string
	Note      *string
}

// Validate validates the save input.
func (i SaveInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.ProductID) == "" {
		errs = append(errs, domain.FieldError{Field: "product_id", Message: "required"})
	} else if len(i.ProductID) > maxProductIDLen {
		errs = append(errs, domain.FieldError{Field: "product_id", Message: "too long"})
	}

	if i.Note != nil && len(*i.Note) > maxNoteLen {
		errs = append(errs, domain.FieldError{Field: "note", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
