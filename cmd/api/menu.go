package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getMenuHandler godoc
//
//	@Summary		Get an outlet's menu
//	@Description	Returns the catalog merged with the outlet's price and availability overrides
//	@Tags			menu
//	@Produce		json
//	@Param			outlet_id	path		string	true	"Outlet ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/menu/{outlet_id} [get]
func (app *application) getMenuHandler(w http.ResponseWriter, r *http.Request) {
	outletID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "outlet_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if _, err := app.outletRepo.GetByID(r.Context(), outletID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	menu, err := app.menuService.EffectiveMenu(r.Context(), outletID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "", menu); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateItemStatusRequest struct {
	OutletID    string   `json:"outlet_id" validate:"required"`
	IsAvailable *bool    `json:"is_available" validate:"required"`
	CustomPrice *float64 `json:"custom_price,omitempty"`
}

// updateItemStatusHandler godoc
//
//	@Summary		Toggle item availability for an outlet
//	@Description	Managers flip availability directly. Price changes must go through a price request.
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string					true	"Menu item ID"
//	@Param			request	body		UpdateItemStatusRequest	true	"Availability update"
//	@Success		200		{object}	domain.OutletItemOverride
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/manager/menu/{item_id}/status [put]
func (app *application) updateItemStatusHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateItemStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if req.CustomPrice != nil {
		app.badRequestResponse(w, r, errors.New("price changes require an approved price request"))
		return
	}

	outletID, err := primitive.ObjectIDFromHex(req.OutletID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	claims := claimsFromContext(r.Context())
	if !canManageOutlet(claims, outletID) {
		app.forbiddenResponse(w, r)
		return
	}

	actorID, err := claimsUserID(claims)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	override, err := app.menuService.SetAvailability(r.Context(), outletID, itemID, actorID, *req.IsAvailable)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "availability updated", override); err != nil {
		app.internalServerError(w, r, err)
	}
}
