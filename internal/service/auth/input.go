package auth

import (
	"net/mail"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt input limit
	maxEmailLen    = 254
	maxNameLen     = 100
)

func validateEmail(email string, errs []domain.FieldError) []domain.FieldError {
	if email == "" {
		return append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if len(email) > maxEmailLen {
		return append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}
	return errs
}

func validatePassword(field, password string, errs []domain.FieldError) []domain.FieldError {
	if password == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if len(password) < minPasswordLen {
		return append(errs, domain.FieldError{Field: field, Message: "too short"})
	}
	if len(password) > maxPasswordLen {
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}

// SignupInput holds parameters for the signup operation. GuestID is the
// caller's guest session id, if any; it drives saved-item adoption.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	GuestID  string
}

// Validate validates the signup input.
func (i SignupInput) Validate() error {
	var errs []domain.FieldError

	errs = validateEmail(i.Email, errs)
	errs = validatePassword("password", i.Password, errs)

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for the password login operation.
type LoginInput struct {
	Email    string
	Password string
	GuestID  string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	errs = validateEmail(i.Email, errs)
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > maxPasswordLen {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for the token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.RefreshToken == "" {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "required"})
	} else if len(i.RefreshToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ChangePasswordInput holds parameters for the password change operation.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// Validate validates the change-password input.
func (i ChangePasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.CurrentPassword == "" {
		errs = append(errs, domain.FieldError{Field: "current_password", Message: "required"})
	}
	errs = validatePassword("new_password", i.NewPassword, errs)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
