package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentroll/internal/validation"
)

type sampleRequest struct {
	Name   string          `json:"name" validate:"required,min=2"`
	Email  string          `json:"email" validate:"required,email"`
	Month  int             `json:"billing_month" validate:"gte=1,lte=12"`
	Amount decimal.Decimal `json:"rent_amount" validate:"gte=0"`
}

func TestCheck_Valid(t *testing.T) {
	errs := validation.Check(sampleRequest{
		Name:   "Riverside House",
		Email:  "jane@example.com",
		Month:  3,
		Amount: decimal.RequireFromString("5000"),
	})
	assert.Nil(t, errs)
}

func TestCheck_ReportsJSONFieldNames(t *testing.T) {
	errs := validation.Check(sampleRequest{
		Name:   "R",
		Email:  "not-an-email",
		Month:  13,
		Amount: decimal.RequireFromString("-1"),
	})
	require.NotNil(t, errs)

	assert.Equal(t, "must be at least 2 characters", errs["name"])
	assert.Equal(t, "must be a valid email address", errs["email"])
	assert.Equal(t, "must be at most 12", errs["billing_month"])
	assert.Equal(t, "must be at least 0", errs["rent_amount"])
}

func TestCheck_Required(t *testing.T) {
	errs := validation.Check(sampleRequest{Month: 1})
	require.NotNil(t, errs)
	assert.Equal(t, "is required", errs["name"])
	assert.Equal(t, "is required", errs["email"])
}
