package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/api/validators"
	"github.com/sweetquest/sweetquest-backend/internal/catalog"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

// AdminMenuList returns the full catalog, hidden items included.
func AdminMenuList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		views, err := svc.ListMenu(r.Context(), catalog.ListMenuParams{
			Category:      validators.QueryString(r, "category"),
			IncludeHidden: true,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]menuItemResponse, len(views))
		for i, view := range views {
			items[i] = newMenuItemResponse(view)
		}
		responses.WriteSuccess(w, items)
	}
}

type createVariationPayload struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

type createAddOnPayload struct {
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

type createMenuItemRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"required"`
	BasePrice   decimal.Decimal `json:"base_price" validate:"required"`
	ImageURL    *string         `json:"image_url"`
	Available   bool            `json:"available"`
	Popular     bool            `json:"popular"`

	DiscountPrice     *decimal.Decimal `json:"discount_price"`
	DiscountStartDate *time.Time       `json:"discount_start_date"`
	DiscountEndDate   *time.Time       `json:"discount_end_date"`
	DiscountActive    bool             `json:"discount_active"`

	Variations []createVariationPayload `json:"variations" validate:"dive"`
	AddOns     []createAddOnPayload     `json:"add_ons" validate:"dive"`
}

func (req createMenuItemRequest) toInput() catalog.CreateMenuItemInput {
	input := catalog.CreateMenuItemInput{
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		BasePrice:         req.BasePrice,
		ImageURL:          req.ImageURL,
		Available:         req.Available,
		Popular:           req.Popular,
		DiscountPrice:     req.DiscountPrice,
		DiscountStartDate: req.DiscountStartDate,
		DiscountEndDate:   req.DiscountEndDate,
		DiscountActive:    req.DiscountActive,
	}
	for _, v := range req.Variations {
		input.Variations = append(input.Variations, catalog.VariationInput{Name: v.Name, Price: v.Price})
	}
	for _, a := range req.AddOns {
		input.AddOns = append(input.AddOns, catalog.AddOnInput{Name: a.Name, Price: a.Price, Category: a.Category})
	}
	return input
}

// AdminMenuCreate adds a menu item with its variations and add-ons.
func AdminMenuCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createMenuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.CreateMenuItem(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newMenuItemResponse(*view))
	}
}

type updateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	ImageURL    *string          `json:"image_url"`
	Available   *bool            `json:"available"`
	Popular     *bool            `json:"popular"`

	DiscountPrice     *decimal.Decimal `json:"discount_price"`
	DiscountStartDate *time.Time       `json:"discount_start_date"`
	DiscountEndDate   *time.Time       `json:"discount_end_date"`
	DiscountActive    *bool            `json:"discount_active"`
}

// AdminMenuUpdate applies a partial update to a menu item.
func AdminMenuUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "itemID"), "item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMenuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateMenuItem(r.Context(), id, catalog.UpdateMenuItemInput{
			Name:              body.Name,
			Description:       body.Description,
			Category:          body.Category,
			BasePrice:         body.BasePrice,
			ImageURL:          body.ImageURL,
			Available:         body.Available,
			Popular:           body.Popular,
			DiscountPrice:     body.DiscountPrice,
			DiscountStartDate: body.DiscountStartDate,
			DiscountEndDate:   body.DiscountEndDate,
			DiscountActive:    body.DiscountActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMenuItemResponse(*view))
	}
}

// AdminMenuDelete removes a menu item.
func AdminMenuDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "itemID"), "item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMenuItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
