package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sweetquest/sweetquest-backend/api/middleware"
	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/api/validators"
	"github.com/sweetquest/sweetquest-backend/internal/referrals"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

type referralResponse struct {
	Valid         bool       `json:"valid"`
	Code          string     `json:"code,omitempty"`
	AffiliateID   *uuid.UUID `json:"affiliate_id,omitempty"`
	AffiliateName string     `json:"affiliate_name,omitempty"`
	FromCache     bool       `json:"from_cache"`
}

// ReferralResolve validates a referral code for the visitor session and
// remembers it for later checkouts. Without a code it reports whatever the
// session already carries.
func ReferralResolve(resolver *referrals.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "referral resolver unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		resolution, err := resolver.Resolve(r.Context(), sessionID, validators.QueryString(r, "code"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := referralResponse{FromCache: resolution.FromCache}
		if resolution.Affiliate != nil {
			payload.Valid = true
			payload.Code = resolution.Code
			payload.AffiliateID = &resolution.Affiliate.ID
			payload.AffiliateName = resolution.Affiliate.Name
		}
		responses.WriteSuccess(w, payload)
	}
}

// ReferralClear drops the visitor session's remembered referral code.
func ReferralClear(resolver *referrals.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "referral resolver unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := resolver.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
