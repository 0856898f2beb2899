package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/api/validators"
	"github.com/sweetquest/sweetquest-backend/internal/catalog"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

// MenuList returns the storefront menu, decorated with effective prices.
func MenuList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		onlyPopular, err := validators.QueryBool(r, "popular")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.ListMenu(r.Context(), catalog.ListMenuParams{
			Category:    validators.QueryString(r, "category"),
			OnlyPopular: onlyPopular,
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

// MenuGet returns one menu item by id.
func MenuGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		view, err := svc.GetMenuItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMenuItemResponse(*view))
	}
}

type menuItemResponse struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	BasePrice      decimal.Decimal     `json:"base_price"`
	EffectivePrice decimal.Decimal     `json:"effective_price"`
	OnDiscount     bool                `json:"on_discount"`
	ImageURL       *string             `json:"image_url,omitempty"`
	Available      bool                `json:"available"`
	Popular        bool                `json:"popular"`
	Variations     []variationResponse `json:"variations"`
	AddOns         []addOnResponse     `json:"add_ons"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type variationResponse struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type addOnResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

func newMenuItemResponse(view catalog.MenuItemView) menuItemResponse {
	return menuItemResponse{
		ID:             view.Item.ID,
		Name:           view.Item.Name,
		Description:    view.Item.Description,
		Category:       view.Item.Category,
		BasePrice:      view.Item.BasePrice,
		EffectivePrice: view.EffectivePrice,
		OnDiscount:     view.OnDiscount,
		ImageURL:       view.Item.ImageURL,
		Available:      view.Item.Available,
		Popular:        view.Item.Popular,
		Variations:     newVariationResponses(view.Item.Variations),
		AddOns:         newAddOnResponses(view.Item.AddOns),
		CreatedAt:      view.Item.CreatedAt,
		UpdatedAt:      view.Item.UpdatedAt,
	}
}

func newVariationResponses(variations []models.Variation) []variationResponse {
	out := make([]variationResponse, len(variations))
	for i, v := range variations {
		out[i] = variationResponse{ID: v.ID, Name: v.Name, Price: v.Price}
	}
	return out
}

func newAddOnResponses(addOns []models.AddOn) []addOnResponse {
	out := make([]addOnResponse, len(addOns))
	for i, a := range addOns {
		out[i] = addOnResponse{ID: a.ID, Name: a.Name, Price: a.Price, Category: a.Category}
	}
	return out
}
