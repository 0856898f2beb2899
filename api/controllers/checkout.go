package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/api/middleware"
	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/api/validators"
	checkoutsvc "github.com/sweetquest/sweetquest-backend/internal/checkout"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

// Field-level checks live in checkout.Details.Validate, which knows which
// fields each service type needs.
type checkoutDetailsPayload struct {
	CustomerName  string `json:"customer_name"`
	ContactNumber string `json:"contact_number"`
	ServiceType   string `json:"service_type"`

	DeliveryAddress string `json:"delivery_address"`
	Landmark        string `json:"landmark"`
	PickupTime      string `json:"pickup_time"`
	PartySize       int    `json:"party_size"`
	DineInTime      string `json:"dine_in_time"`
	Notes           string `json:"notes"`
}

func (p checkoutDetailsPayload) toDetails() (checkoutsvc.Details, error) {
	serviceType, err := enums.ParseServiceType(p.ServiceType)
	if err != nil {
		return checkoutsvc.Details{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service type")
	}
	return checkoutsvc.Details{
		CustomerName:    p.CustomerName,
		ContactNumber:   p.ContactNumber,
		ServiceType:     serviceType,
		DeliveryAddress: p.DeliveryAddress,
		Landmark:        p.Landmark,
		PickupTime:      p.PickupTime,
		PartySize:       p.PartySize,
		DineInTime:      p.DineInTime,
		Notes:           p.Notes,
	}, nil
}

type checkoutStepRequest struct {
	Step      string                 `json:"step" validate:"required"`
	Direction string                 `json:"direction" validate:"required,oneof=next back"`
	Details   checkoutDetailsPayload `json:"details"`
}

type checkoutStepResponse struct {
	Step string `json:"step"`
}

// CheckoutStep validates the captured details and moves the checkout flow
// forward or back.
func CheckoutStep(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkoutStepRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current := checkoutsvc.Step(body.Step)
		if !current.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout step"))
			return
		}

		if body.Direction == "back" {
			responses.WriteSuccess(w, checkoutStepResponse{Step: string(checkoutsvc.Back(current))})
			return
		}

		details, err := body.Details.toDetails()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		next, err := checkoutsvc.Advance(current, details)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutStepResponse{Step: string(next)})
	}
}

type checkoutSubmitRequest struct {
	Details           checkoutDetailsPayload `json:"details" validate:"required"`
	PaymentMethodCode string                 `json:"payment_method_code" validate:"required"`
	ReferenceNo       string                 `json:"reference_number"`
}

type checkoutSubmitResponse struct {
	OrderID        *uuid.UUID      `json:"order_id,omitempty"`
	OrderPersisted bool            `json:"order_persisted"`
	Total          decimal.Decimal `json:"total"`
	Summary        string          `json:"summary"`
	MessengerURL   string          `json:"messenger_url"`
}

// CheckoutSubmit finalizes the cart into an order summary and a Messenger
// handoff link. The cart token and visitor session ride on headers.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutSubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		details, err := body.Details.toDetails()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), checkoutsvc.SubmitInput{
			CartToken:         token,
			SessionID:         middleware.SessionIDFromContext(r.Context()),
			Details:           details,
			PaymentMethodCode: body.PaymentMethodCode,
			ReferenceNo:       body.ReferenceNo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := checkoutSubmitResponse{
			OrderPersisted: result.OrderPersisted,
			Total:          result.Total,
			Summary:        result.Summary,
			MessengerURL:   result.MessengerURL,
		}
		if result.Order != nil {
			payload.OrderID = &result.Order.ID
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payload)
	}
}
