package pricing

import (
	"context"
	"fmt"
	"sort"
	"time"

	availabilityRepo "strbooking/database/repository/availability"
	propertyRepo "strbooking/database/repository/property"
	"strbooking/models"
	"strbooking/utils"
)

const dateLayout = "2006-01-02"

// Engine computes the full cost of a stay.
type Engine interface {
	Calculate(ctx context.Context, propertyID, checkIn, checkOut string, guests int) (*models.PricingBreakdown, error)
}

// DefaultEngine prices stays from property settings and per-day overrides.
type DefaultEngine struct {
	Properties     propertyRepo.PropertyRepository
	Availability   availabilityRepo.AvailabilityRepository
	DefaultTaxRate float64 // used when the property has no tax-rate override
}

// Calculate builds the nightly breakdown, applies the length-of-stay
// discount and taxes, and returns the rounded total. Taxes apply to the
// discounted nightly subtotal only, never to fees or the deposit.
func (e *DefaultEngine) Calculate(ctx context.Context, propertyID, checkIn, checkOut string, guests int) (*models.PricingBreakdown, error) {
	checkInDt, errIn := time.Parse(dateLayout, checkIn)
	checkOutDt, errOut := time.Parse(dateLayout, checkOut)
	if errIn != nil || errOut != nil || !checkOutDt.After(checkInDt) {
		return nil, ErrInvalidDateRange
	}

	nights := int(checkOutDt.Sub(checkInDt).Hours() / 24)
	if nights < 1 {
		return nil, ErrInvalidNights
	}

	property, err := e.Properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property %s: %w", propertyID, err)
	}

	taxRate := property.TaxRate
	if taxRate == 0 {
		taxRate = e.DefaultTaxRate
	}

	daily, err := e.dailyRates(ctx, property, checkInDt, checkOutDt)
	if err != nil {
		return nil, err
	}

	var nightlySubtotal float64
	for _, d := range daily {
		nightlySubtotal += d.Rate
	}
	avgNightlyRate := utils.Round2(nightlySubtotal / float64(nights))

	discountRate := losDiscountRate(nights, property.LOSDiscounts)
	discountedSubtotal := utils.Round2(nightlySubtotal * (1 - discountRate))

	taxes := utils.Round2(discountedSubtotal * taxRate)
	total := utils.Round2(discountedSubtotal + property.CleaningFee + taxes + property.SecurityDeposit)

	return &models.PricingBreakdown{
		Nights:          nights,
		NightlyRate:     avgNightlyRate,
		NightlySubtotal: utils.Round2(nightlySubtotal),
		LOSDiscount:     utils.Round2(nightlySubtotal * discountRate),
		LOSDiscountRate: discountRate,
		CleaningFee:     property.CleaningFee,
		SecurityDeposit: property.SecurityDeposit,
		Taxes:           taxes,
		TaxRate:         taxRate,
		Total:           total,
		DailyBreakdown:  daily,
	}, nil
}

// dailyRates builds one entry per night, preferring per-day price
// overrides from the availability table over the base rate.
func (e *DefaultEngine) dailyRates(ctx context.Context, property *models.Property, checkIn, checkOut time.Time) ([]models.DailyRate, error) {
	overrides, err := e.Availability.PriceOverrides(ctx, property.ID,
		checkIn.Format(dateLayout), checkOut.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load price overrides: %w", err)
	}

	var daily []models.DailyRate
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		rate := property.NightlyRate
		if override, ok := overrides[date]; ok {
			rate = override
		}
		daily = append(daily, models.DailyRate{Date: date, Rate: rate})
	}
	return daily, nil
}

// losDiscountRate picks the highest qualifying tier: tiers sorted by
// minNights descending, first one the stay reaches wins.
func losDiscountRate(nights int, tiers []models.LOSDiscountTier) float64 {
	if len(tiers) == 0 {
		return 0
	}

	sorted := make([]models.LOSDiscountTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinNights > sorted[j].MinNights
	})

	for _, tier := range sorted {
		if nights >= tier.MinNights {
			return tier.Discount
		}
	}
	return 0
}
