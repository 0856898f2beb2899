package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/api/validators"
	"github.com/sweetquest/sweetquest-backend/internal/paymentmethods"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

type paymentMethodResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	AccountName   string    `json:"account_name"`
	AccountNumber string    `json:"account_number"`
	QRCodeURL     *string   `json:"qr_code_url,omitempty"`
	Enabled       bool      `json:"enabled"`
	SortOrder     int       `json:"sort_order"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newPaymentMethodResponse(m models.PaymentMethodAccount) paymentMethodResponse {
	return paymentMethodResponse{
		ID:            m.ID,
		Code:          m.Code,
		Name:          m.Name,
		AccountName:   m.AccountName,
		AccountNumber: m.AccountNumber,
		QRCodeURL:     m.QRCodeURL,
		Enabled:       m.Enabled,
		SortOrder:     m.SortOrder,
		UpdatedAt:     m.UpdatedAt,
	}
}

func newPaymentMethodResponses(methods []models.PaymentMethodAccount) []paymentMethodResponse {
	out := make([]paymentMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = newPaymentMethodResponse(m)
	}
	return out
}

// PaymentMethodsList returns the enabled payment destinations shown at
// checkout.
func PaymentMethodsList(svc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment method service unavailable"))
			return
		}

		methods, err := svc.ListEnabled(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newPaymentMethodResponses(methods))
	}
}

type updatePaymentMethodRequest struct {
	Name          *string `json:"name"`
	AccountName   *string `json:"account_name"`
	AccountNumber *string `json:"account_number"`
	QRCodeURL     *string `json:"qr_code_url"`
	Enabled       *bool   `json:"enabled"`
	SortOrder     *int    `json:"sort_order"`
}

// AdminPaymentMethodUpdate edits a payment destination's display fields or
// toggles it on and off. The code is immutable.
func AdminPaymentMethodUpdate(svc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment method service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "methodID"), "payment method id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updatePaymentMethodRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := svc.UpdateAccount(r.Context(), id, paymentmethods.UpdateAccountInput{
			Name:          body.Name,
			AccountName:   body.AccountName,
			AccountNumber: body.AccountNumber,
			QRCodeURL:     body.QRCodeURL,
			Enabled:       body.Enabled,
			SortOrder:     body.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newPaymentMethodResponse(*method))
	}
}

// AdminPaymentMethodsList returns every payment destination, enabled or not.
func AdminPaymentMethodsList(svc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment method service unavailable"))
			return
		}

		methods, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newPaymentMethodResponses(methods))
	}
}
