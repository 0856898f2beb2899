package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/api/validators"
	"github.com/sweetquest/sweetquest-backend/internal/referrals"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

type orderResponse struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	ContactNumber string          `json:"contact_number"`
	ServiceType   string          `json:"service_type"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	ReferenceNo   *string         `json:"reference_number,omitempty"`
	Status        string          `json:"status"`

	ReferredBy   *string    `json:"referred_by,omitempty"`
	ReferralCode *string    `json:"referral_code,omitempty"`
	AffiliateID  *uuid.UUID `json:"affiliate_id,omitempty"`

	DeliveryAddress *string `json:"delivery_address,omitempty"`
	Landmark        *string `json:"landmark,omitempty"`
	PickupTime      *string `json:"pickup_time,omitempty"`
	PartySize       *int    `json:"party_size,omitempty"`
	DineInTime      *string `json:"dine_in_time,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newOrderResponse(record models.Order) orderResponse {
	return orderResponse{
		ID:              record.ID,
		CustomerName:    record.CustomerName,
		ContactNumber:   record.ContactNumber,
		ServiceType:     string(record.ServiceType),
		Total:           record.Total,
		PaymentMethod:   record.PaymentMethod,
		ReferenceNo:     record.ReferenceNo,
		Status:          string(record.Status),
		ReferredBy:      record.ReferredBy,
		ReferralCode:    record.ReferralCode,
		AffiliateID:     record.AffiliateID,
		DeliveryAddress: record.DeliveryAddress,
		Landmark:        record.Landmark,
		PickupTime:      record.PickupTime,
		PartySize:       record.PartySize,
		DineInTime:      record.DineInTime,
		Notes:           record.Notes,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func newOrderResponses(records []models.Order) []orderResponse {
	out := make([]orderResponse, len(records))
	for i, record := range records {
		out[i] = newOrderResponse(record)
	}
	return out
}

type ordersPageResponse struct {
	Orders     []orderResponse `json:"orders"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// AdminOrdersList returns orders, newest first, with optional status and
// referral filters.
func AdminOrdersList(svc referrals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		params := referrals.ListOrdersParams{}
		if raw := validators.QueryString(r, "status"); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			params.Status = &status
		}

		onlyReferred, err := validators.QueryBool(r, "referred")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.OnlyReferred = onlyReferred

		limit, err := validators.QueryInt(r, "limit", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if limit < 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must not be negative"))
			return
		}
		params.Limit = limit
		params.Cursor = validators.QueryString(r, "cursor")

		page, err := svc.ListOrders(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ordersPageResponse{
			Orders:     newOrderResponses(page.Orders),
			NextCursor: page.NextCursor,
		})
	}
}

// AdminAffiliateOrders returns the orders attributed to one partner.
func AdminAffiliateOrders(svc referrals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "affiliateID"), "affiliate id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListOrdersByAffiliate(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponses(records))
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminOrderStatusUpdate moves an order to a new status.
func AdminOrderStatusUpdate(svc referrals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		record, err := svc.UpdateOrderStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(*record))
	}
}
