package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/internal/referrals"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

type referralStatsResponse struct {
	TotalReferrals   int64                 `json:"total_referrals"`
	TotalRevenue     decimal.Decimal       `json:"total_revenue"`
	AvgOrderValue    decimal.Decimal       `json:"avg_order_value"`
	TotalAffiliates  int64                 `json:"total_affiliates"`
	ActiveAffiliates int64                 `json:"active_affiliates"`
	TopAffiliate     *topAffiliateResponse `json:"top_affiliate,omitempty"`
}

type topAffiliateResponse struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Count int64           `json:"count"`
	Sales decimal.Decimal `json:"sales"`
}

// AdminReferralStats summarizes referral performance across all partners.
func AdminReferralStats(svc referrals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "referral service unavailable"))
			return
		}

		stats, err := svc.ComputeStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := referralStatsResponse{
			TotalReferrals:   stats.TotalReferrals,
			TotalRevenue:     stats.TotalRevenue,
			AvgOrderValue:    stats.AvgOrderValue,
			TotalAffiliates:  stats.TotalAffiliates,
			ActiveAffiliates: stats.ActiveAffiliates,
		}
		if stats.TopAffiliate != nil {
			payload.TopAffiliate = &topAffiliateResponse{
				ID:    stats.TopAffiliate.ID,
				Name:  stats.TopAffiliate.Name,
				Count: stats.TopAffiliate.Count,
				Sales: stats.TopAffiliate.Sales,
			}
		}
		responses.WriteSuccess(w, payload)
	}
}

type affiliateAnalyticsResponse struct {
	AffiliateID    uuid.UUID       `json:"affiliate_id"`
	AffiliateName  string          `json:"affiliate_name"`
	TotalReferrals int64           `json:"total_referrals"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	WeekReferrals  int64           `json:"week_referrals"`
	MonthReferrals int64           `json:"month_referrals"`
	LastReferralAt *time.Time      `json:"last_referral_at,omitempty"`
}

// AdminAffiliateAnalytics breaks referral counts down per partner with
// calendar week and month windows.
func AdminAffiliateAnalytics(svc referrals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "referral service unavailable"))
			return
		}

		rows, err := svc.ComputeAnalytics(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]affiliateAnalyticsResponse, len(rows))
		for i, row := range rows {
			out[i] = affiliateAnalyticsResponse{
				AffiliateID:    row.AffiliateID,
				AffiliateName:  row.AffiliateName,
				TotalReferrals: row.TotalReferrals,
				TotalRevenue:   row.TotalRevenue,
				WeekReferrals:  row.WeekReferrals,
				MonthReferrals: row.MonthReferrals,
				LastReferralAt: row.LastReferralAt,
			}
		}
		responses.WriteSuccess(w, out)
	}
}
