package dto

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

// CreateStaffRequest payload for new staff accounts. Role is fixed server
// side to Station Staff; the console cannot choose it.
type CreateStaffRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

var (
	// Letters (any script, Vietnamese included) and spaces only.
	nameRe  = regexp.MustCompile(`^[\p{L} ]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Vietnamese mobile format: 0 / 84 / +84 prefix followed by 8-9 digits.
	phoneRe = regexp.MustCompile(`^(\+84|84|0)\d{8,9}$`)
)

// Normalize trims whitespace and strips phone separators before validation.
func (r *CreateStaffRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	phone := strings.TrimSpace(r.Phone)
	phone = strings.NewReplacer(" ", "", ".", "", "-", "").Replace(phone)
	r.Phone = phone
}

// Validate applies the form rules. Submission never happens on invalid
// input; these are the same checks the console performs inline.
func (r CreateStaffRequest) Validate() error {
	details := map[string]any{}

	nameLen := utf8.RuneCountInString(r.FullName)
	if nameLen < 2 || nameLen > 100 {
		details["fullname"] = "must be 2-100 characters"
	} else if !nameRe.MatchString(r.FullName) {
		details["fullname"] = "letters and spaces only"
	}

	if r.Email == "" || len(r.Email) > 100 || !emailRe.MatchString(r.Email) {
		details["email"] = "must be a valid email up to 100 characters"
	}

	if !phoneRe.MatchString(r.Phone) {
		details["phone"] = "must be a Vietnamese phone number (0, 84 or +84 prefix)"
	}

	if len(details) > 0 {
		return apierr.NewValidation("invalid staff account details", details)
	}
	return nil
}

// ToInput converts the validated request to the backend payload.
func (r CreateStaffRequest) ToInput() platform.CreateStaffInput {
	return platform.CreateStaffInput{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Role:     domain.RoleStationStaff,
	}
}

// CreateStaffResponse reports how the submission resolved.
type CreateStaffResponse struct {
	Phase             string       `json:"phase"`
	Message           string       `json:"message"`
	User              *domain.User `json:"user,omitempty"`
	TemporaryPassword string       `json:"temporaryPassword,omitempty"`
}
