package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"strbooking/models"
)

func TestValidateSplitConfig(t *testing.T) {
	cases := []struct {
		name      string
		splitType string
		value     float64
		wantErr   bool
	}{
		{"valid percentage", models.SplitTypePercentage, 0.25, false},
		{"percentage of zero", models.SplitTypePercentage, 0, false},
		{"full percentage", models.SplitTypePercentage, 1, false},
		{"percentage above one", models.SplitTypePercentage, 1.5, true},
		{"negative percentage", models.SplitTypePercentage, -0.1, true},
		{"valid fixed", models.SplitTypeFixed, 150, false},
		{"negative fixed", models.SplitTypeFixed, -1, true},
		{"unknown type", "revenue_share", 0.5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSplitConfig(tc.splitType, tc.value)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSplitConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalculateSplit_Percentage(t *testing.T) {
	cohost := models.Cohost{SplitType: models.SplitTypePercentage, SplitValue: 0.30}

	// base is total minus the security deposit: 930.40 - 200 = 730.40
	amount := CalculateSplit(930.40, 200, cohost)

	assert.Equal(t, 219.12, amount)
}

func TestCalculateSplit_Fixed(t *testing.T) {
	cohost := models.Cohost{SplitType: models.SplitTypeFixed, SplitValue: 150}

	amount := CalculateSplit(930.40, 200, cohost)

	assert.Equal(t, 150.00, amount)
}

func TestCalculateSplit_FixedCappedAtBase(t *testing.T) {
	cohost := models.Cohost{SplitType: models.SplitTypeFixed, SplitValue: 5000}

	amount := CalculateSplit(930.40, 200, cohost)

	assert.Equal(t, 730.40, amount)
}

func TestCalculateSplit_DepositNeverShared(t *testing.T) {
	cohost := models.Cohost{SplitType: models.SplitTypePercentage, SplitValue: 1}

	amount := CalculateSplit(500, 500, cohost)

	assert.Equal(t, 0.00, amount)
}
