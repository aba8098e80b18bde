package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idPayload struct {
	BranchID uuid.UUID `validate:"uuid_required"`
}

type pricePayload struct {
	Currency string `validate:"omitempty,currency_code"`
}

func TestUUIDRequired(t *testing.T) {
	errs := ValidateStruct(&idPayload{})
	require.Len(t, errs, 1)
	assert.Equal(t, "uuid_required", errs[0].Tag)

	errs = ValidateStruct(&idPayload{BranchID: uuid.New()})
	assert.Empty(t, errs)
}

func TestCurrencyCode(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "MXN"} {
		assert.Empty(t, ValidateStruct(&pricePayload{Currency: code}), "code %q", code)
	}

	for _, code := range []string{"usd", "US", "EURO", "U$D"} {
		errs := ValidateStruct(&pricePayload{Currency: code})
		require.Len(t, errs, 1, "code %q", code)
		assert.Equal(t, "currency_code", errs[0].Tag)
	}

	// omitempty lets the column default stand.
	assert.Empty(t, ValidateStruct(&pricePayload{}))
}
