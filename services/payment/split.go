package payment

import (
	"strbooking/models"
	"strbooking/utils"
)

// ValidateSplitConfig rejects bad split settings at configuration time so
// calculation never has to. Percentages live in [0,1]; fixed amounts must
// be non-negative.
func ValidateSplitConfig(splitType string, splitValue float64) error {
	switch splitType {
	case models.SplitTypePercentage:
		if splitValue < 0 || splitValue > 1 {
			return ErrInvalidSplitConfig
		}
	case models.SplitTypeFixed:
		if splitValue < 0 {
			return ErrInvalidSplitConfig
		}
	default:
		return ErrInvalidSplitConfig
	}
	return nil
}

// CalculateSplit computes a co-host's transfer amount. The security
// deposit is refunded to the guest or retained separately and is never
// split, so the transferable base is total minus deposit. A fixed split
// is capped at the base: a co-host can never receive more than the
// booking nets.
func CalculateSplit(bookingTotal, securityDeposit float64, cohost models.Cohost) float64 {
	base := bookingTotal - securityDeposit

	if cohost.SplitType == models.SplitTypePercentage {
		return utils.Round2(base * cohost.SplitValue)
	}

	fixed := utils.Round2(cohost.SplitValue)
	if fixed > base {
		return base
	}
	return fixed
}
