package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/api/validators"
	cartsvc "github.com/sweetquest/sweetquest-backend/internal/cart"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

// CartFetch returns the visitor's cart addressed by the cart token header.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetCart(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartAddItem adds a configured menu item to the cart. A missing token
// starts a fresh cart; the minted token comes back in the response.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AddItem(r.Context(), cartToken(r), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(cartTokenHeader, record.Token)
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(record))
	}
}

// CartUpdateLine sets the quantity of an existing line. Zero removes it.
func CartUpdateLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineKey := strings.TrimSpace(chi.URLParam(r, "lineKey"))
		if lineKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line key is required"))
			return
		}

		var body updateLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.SetQuantity(r.Context(), token, lineKey, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartRemoveLine drops a line from the cart.
func CartRemoveLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineKey := strings.TrimSpace(chi.URLParam(r, "lineKey"))
		if lineKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line key is required"))
			return
		}

		record, err := svc.RemoveLine(r.Context(), token, lineKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartClear empties the visitor's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

type addItemRequest struct {
	MenuItemID  uuid.UUID             `json:"menu_item_id" validate:"required"`
	VariationID *uuid.UUID            `json:"variation_id"`
	AddOns      []addOnSelectionInput `json:"add_ons" validate:"dive"`
	Quantity    int                   `json:"quantity" validate:"required,min=1"`
}

type addOnSelectionInput struct {
	AddOnID  uuid.UUID `json:"add_on_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

func (r addItemRequest) toInput() cartsvc.AddItemInput {
	addOns := make([]cartsvc.AddOnSelection, len(r.AddOns))
	for i, sel := range r.AddOns {
		addOns[i] = cartsvc.AddOnSelection{AddOnID: sel.AddOnID, Quantity: sel.Quantity}
	}
	return cartsvc.AddItemInput{
		MenuItemID:  r.MenuItemID,
		VariationID: r.VariationID,
		AddOns:      addOns,
		Quantity:    r.Quantity,
	}
}

type updateLineRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type cartResponse struct {
	Token      string          `json:"token"`
	Lines      []cartsvc.Line  `json:"lines"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func newCartResponse(record *cartsvc.Cart) cartResponse {
	if record == nil {
		return cartResponse{Lines: []cartsvc.Line{}, TotalPrice: decimal.Zero}
	}
	lines := record.Lines
	if lines == nil {
		lines = []cartsvc.Line{}
	}
	return cartResponse{
		Token:      record.Token,
		Lines:      lines,
		TotalItems: record.TotalItems(),
		TotalPrice: record.TotalPrice(),
		UpdatedAt:  record.UpdatedAt,
	}
}

func cartToken(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(cartTokenHeader))
}

func requireCartToken(r *http.Request) (string, error) {
	token := cartToken(r)
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token header is required")
	}
	return token, nil
}
