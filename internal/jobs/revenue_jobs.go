package jobs

import (
	"context"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
)

// SendDailyRevenueSummaries notifies every active company of the revenue of
// the bookings picked up yesterday (UTC). Companies without bookings that day
// get no notification.
func (jr *JobRunner) SendDailyRevenueSummaries() {
	jr.runWithRecovery("SendDailyRevenueSummaries", func() {
		ctx := context.Background()

		today := jr.now().UTC().Truncate(24 * time.Hour)
		from, to := today.AddDate(0, 0, -1), today

		companies, err := jr.store.CompanyRepository.ListActive(ctx)
		if err != nil {
			logger.Error("Failed to list active companies", "error", err)
			return
		}

		sent := 0
		for _, company := range companies {
			companyID := company.ID
			sum, err := jr.services.Report.CompanyRevenue(ctx, &companyID, from, to)
			if err != nil {
				logger.Error("Failed to compute revenue summary", "companyID", companyID.Hex(), "error", err)
				continue
			}
			if sum.Bookings == 0 && sum.Skipped == 0 {
				continue
			}

			note := jr.revenueNotification(company, sum)
			if err := jr.services.Notification.Notify(ctx, note); err != nil {
				logger.Error("Failed to create revenue notification", "companyID", companyID.Hex(), "error", err)
				continue
			}
			sent++
		}

		logger.Info("Daily revenue summaries sent", "day", from.Format(time.DateOnly), "companies", len(companies), "notifications", sent)
	})
}

func (jr *JobRunner) revenueNotification(company domain.Company, sum *service.RevenueSummary) *domain.Notification {
	places := jr.config.FinanceEngineConfig().CurrencyPlaces
	day := sum.From.Format(time.DateOnly)

	msg := fmt.Sprintf("%d booking(s) picked up on %s: grand total %s, VAT %s, coupon discounts %s, refundable %s.",
		sum.Bookings, day,
		sum.GrandTotal.StringFixed(places),
		sum.VATAmount.StringFixed(places),
		sum.CouponDiscount.StringFixed(places),
		sum.RefundableAmount.StringFixed(places),
	)
	if sum.Skipped > 0 {
		msg += fmt.Sprintf(" %d booking(s) could not be priced and were left out.", sum.Skipped)
	}

	return &domain.Notification{
		RecipientID:   company.ID,
		RecipientRole: domain.RoleCompany,
		Title:         "Daily revenue " + day,
		Message:       msg,
		Attributes: map[string]string{
			"day":        day,
			"bookings":   fmt.Sprint(sum.Bookings),
			"grandTotal": sum.GrandTotal.StringFixed(places),
		},
	}
}
