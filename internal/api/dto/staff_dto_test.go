package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

func validRequest() CreateStaffRequest {
	return CreateStaffRequest{
		FullName: "Nguyen Van A",
		Email:    "a@vinfast.vn",
		Phone:    "0912345678",
	}
}

func TestCreateStaffRequestValidateAccepts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateStaffRequest)
	}{
		{"plain", func(r *CreateStaffRequest) {}},
		{"vietnamese diacritics", func(r *CreateStaffRequest) { r.FullName = "Nguyễn Văn Ánh" }},
		{"plus 84 prefix", func(r *CreateStaffRequest) { r.Phone = "+84912345678" }},
		{"84 prefix", func(r *CreateStaffRequest) { r.Phone = "84912345678" }},
		{"two character name", func(r *CreateStaffRequest) { r.FullName = "An" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			req.Normalize()
			assert.NoError(t, req.Validate())
		})
	}
}

func TestCreateStaffRequestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateStaffRequest)
		field  string
	}{
		{"empty name", func(r *CreateStaffRequest) { r.FullName = "" }, "fullname"},
		{"single rune name", func(r *CreateStaffRequest) { r.FullName = "A" }, "fullname"},
		{"name with digits", func(r *CreateStaffRequest) { r.FullName = "Nguyen 123" }, "fullname"},
		{"name too long", func(r *CreateStaffRequest) { r.FullName = strings.Repeat("a", 101) }, "fullname"},
		{"empty email", func(r *CreateStaffRequest) { r.Email = "" }, "email"},
		{"email without at", func(r *CreateStaffRequest) { r.Email = "vinfast.vn" }, "email"},
		{"email without domain dot", func(r *CreateStaffRequest) { r.Email = "a@vinfast" }, "email"},
		{"email too long", func(r *CreateStaffRequest) { r.Email = strings.Repeat("a", 100) + "@v.vn" }, "email"},
		{"phone wrong prefix", func(r *CreateStaffRequest) { r.Phone = "1912345678" }, "phone"},
		{"phone too short", func(r *CreateStaffRequest) { r.Phone = "0912345" }, "phone"},
		{"phone with letters", func(r *CreateStaffRequest) { r.Phone = "09123abc78" }, "phone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			req.Normalize()

			err := req.Validate()
			require.Error(t, err)

			apiErr := apierr.ToError(err)
			assert.Equal(t, apierr.KindValidation, apiErr.Kind)
			assert.Contains(t, apiErr.Details, tc.field)
		})
	}
}

func TestCreateStaffRequestNormalizeStripsSeparators(t *testing.T) {
	req := CreateStaffRequest{
		FullName: "  Nguyen Van A  ",
		Email:    " a@vinfast.vn ",
		Phone:    " 091-234.56 78 ",
	}
	req.Normalize()

	assert.Equal(t, "Nguyen Van A", req.FullName)
	assert.Equal(t, "a@vinfast.vn", req.Email)
	assert.Equal(t, "0912345678", req.Phone)
	assert.NoError(t, req.Validate())
}

func TestCreateStaffRequestToInputForcesStaffRole(t *testing.T) {
	input := validRequest().ToInput()
	assert.Equal(t, domain.RoleStationStaff, input.Role)
	assert.Equal(t, "a@vinfast.vn", input.Email)
}
