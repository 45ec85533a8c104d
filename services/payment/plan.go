package payment

import (
	"time"

	"strbooking/models"
	"strbooking/utils"
)

const dateLayout = "2006-01-02"

// fourPaymentMinLeadDays: the 4-payment plan needs room for three monthly
// charges before check-in.
const fourPaymentMinLeadDays = 90

// BuildSchedule creates the installment list for a plan. The deposit is
// installment #1 and is always created paid, since it is the up-front
// charge the guest just made. Remaining installments split total-deposit; the
// 4-payment plan pushes rounding drift onto the final installment so the
// schedule sums exactly to the total.
func BuildSchedule(plan string, deposit, total float64, checkIn time.Time, twoPayDaysBefore int) []models.Installment {
	today := time.Now().Format(dateLayout)

	switch plan {
	case models.PlanTwoPayment:
		if twoPayDaysBefore <= 0 {
			twoPayDaysBefore = 42
		}
		remainder := utils.Round2(total - deposit)
		dueDate := checkIn.AddDate(0, 0, -twoPayDaysBefore).Format(dateLayout)

		return []models.Installment{
			{Number: 1, Amount: utils.Round2(deposit), DueDate: today, Status: models.InstallmentPaid},
			{Number: 2, Amount: remainder, DueDate: dueDate, Status: models.InstallmentPending},
		}

	case models.PlanFourPayment:
		remainder := utils.Round2(total - deposit)
		base := utils.Round2(remainder / 3)
		last := utils.Round2(remainder - base*2)

		installments := []models.Installment{
			{Number: 1, Amount: utils.Round2(deposit), DueDate: today, Status: models.InstallmentPaid},
		}
		monthsBefore := []int{3, 2, 1}
		for i, months := range monthsBefore {
			amount := base
			if i == len(monthsBefore)-1 {
				amount = last
			}
			installments = append(installments, models.Installment{
				Number:  i + 2,
				Amount:  amount,
				DueDate: checkIn.AddDate(0, -months, 0).Format(dateLayout),
				Status:  models.InstallmentPending,
			})
		}
		return installments

	default: // pay_in_full
		return []models.Installment{
			{Number: 1, Amount: utils.Round2(total), DueDate: today, Status: models.InstallmentPaid},
		}
	}
}

// EligiblePlans returns the plans a guest may choose for a check-in date.
// A multi-payment plan disappears once check-in is inside its own payment
// window, so no charge can ever be scheduled in the past.
func EligiblePlans(cfg models.PaymentPlanConfig, checkIn, now time.Time) []string {
	daysUntil := int(checkIn.Sub(now).Hours() / 24)

	var plans []string
	if !cfg.FullDisabled {
		plans = append(plans, models.PlanPayInFull)
	}
	if cfg.TwoEnabled && daysUntil > cfg.EffectiveTwoDaysBefore() {
		plans = append(plans, models.PlanTwoPayment)
	}
	if cfg.FourEnabled && daysUntil > fourPaymentMinLeadDays {
		plans = append(plans, models.PlanFourPayment)
	}
	return plans
}

// PlanEligible reports whether a specific plan is offered for the check-in date.
func PlanEligible(cfg models.PaymentPlanConfig, plan string, checkIn, now time.Time) bool {
	for _, p := range EligiblePlans(cfg, checkIn, now) {
		if p == plan {
			return true
		}
	}
	return false
}
