package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/api/validators"
	"github.com/sweetquest/sweetquest-backend/internal/affiliates"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

type affiliateResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	ReferralCode string    `json:"referral_code"`
	Status       string    `json:"status"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newAffiliateResponse(record models.Affiliate) affiliateResponse {
	return affiliateResponse{
		ID:           record.ID,
		Name:         record.Name,
		Email:        record.Email,
		Phone:        record.Phone,
		ReferralCode: record.ReferralCode,
		Status:       string(record.Status),
		Notes:        record.Notes,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

// AdminAffiliatesList returns referral partners, newest first.
func AdminAffiliatesList(svc affiliates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "affiliate service unavailable"))
			return
		}

		params := affiliates.ListAffiliatesParams{}
		if raw := validators.QueryString(r, "status"); raw != "" {
			status, err := enums.ParseAffiliateStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			params.Status = &status
		}

		records, err := svc.ListAffiliates(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]affiliateResponse, len(records))
		for i, record := range records {
			out[i] = newAffiliateResponse(record)
		}
		responses.WriteSuccess(w, out)
	}
}

type createAffiliateRequest struct {
	Name         string  `json:"name" validate:"required"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	ReferralCode string  `json:"referral_code"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
}

// AdminAffiliateCreate registers a referral partner, generating a code when
// none is supplied.
func AdminAffiliateCreate(svc affiliates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "affiliate service unavailable"))
			return
		}

		var body createAffiliateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := affiliates.CreateAffiliateInput{
			Name:         body.Name,
			Email:        body.Email,
			Phone:        body.Phone,
			ReferralCode: body.ReferralCode,
			Notes:        body.Notes,
		}
		if body.Status != nil {
			status, err := enums.ParseAffiliateStatus(*body.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		record, err := svc.CreateAffiliate(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newAffiliateResponse(*record))
	}
}

type updateAffiliateRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	ReferralCode *string `json:"referral_code"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
}

// AdminAffiliateUpdate applies a partial update to a referral partner.
func AdminAffiliateUpdate(svc affiliates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "affiliate service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "affiliateID"), "affiliate id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateAffiliateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := affiliates.UpdateAffiliateInput{
			Name:         body.Name,
			Email:        body.Email,
			Phone:        body.Phone,
			ReferralCode: body.ReferralCode,
			Notes:        body.Notes,
		}
		if body.Status != nil {
			status, err := enums.ParseAffiliateStatus(*body.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		record, err := svc.UpdateAffiliate(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newAffiliateResponse(*record))
	}
}

type generateCodeRequest struct {
	Name string `json:"name" validate:"required"`
}

// AdminAffiliateGenerateCode previews the referral code derived from a
// partner name, without persisting anything.
func AdminAffiliateGenerateCode(svc affiliates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "affiliate service unavailable"))
			return
		}

		var body generateCodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"code": svc.GenerateCode(body.Name)})
	}
}

// AdminAffiliateDelete removes a referral partner. Past orders keep their
// attribution text but lose the foreign key.
func AdminAffiliateDelete(svc affiliates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "affiliate service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "affiliateID"), "affiliate id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteAffiliate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
