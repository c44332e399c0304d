package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/service"
)

type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gte=1"`
}

type CreateOrderRequest struct {
	OutletID string             `json:"outlet_id" validate:"required"`
	Lines    []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=placed cooking ready out_for_delivery completed cancelled"`
}

// createOrderHandler godoc
//
//	@Summary		Place an order
//	@Description	Places an order against an outlet. Prices come from the outlet's effective menu, never from the client.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order"
//	@Success		201		{object}	domain.Order
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	outletID, err := primitive.ObjectIDFromHex(req.OutletID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	lines := make([]service.OrderLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		itemID, err := primitive.ObjectIDFromHex(line.MenuItemID)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		lines = append(lines, service.OrderLineInput{
			MenuItemID: itemID,
			Quantity:   line.Quantity,
		})
	}

	order, err := app.orderService.Place(r.Context(), outletID, lines)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, "order placed", order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOrdersHandler godoc
//
//	@Summary		List an outlet's orders
//	@Description	Lists orders for an outlet the caller manages. status=active narrows to orders still in flight.
//	@Tags			orders
//	@Produce		json
//	@Param			outlet_id	query		string	true	"Outlet ID"
//	@Param			status		query		string	false	"active"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		403			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/manager/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	outletIDStr := r.URL.Query().Get("outlet_id")
	if outletIDStr == "" {
		app.badRequestResponse(w, r, errors.New("outlet_id is required"))
		return
	}

	outletID, err := primitive.ObjectIDFromHex(outletIDStr)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	claims := claimsFromContext(r.Context())
	if !canManageOutlet(claims, outletID) {
		app.forbiddenResponse(w, r)
		return
	}

	activeOnly := r.URL.Query().Get("status") == "active"

	orders, err := app.orderService.ListByOutlet(r.Context(), outletID, activeOnly)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "", orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderStatusHandler godoc
//
//	@Summary		Update an order's status
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string						true	"Order ID"
//	@Param			request		body		UpdateOrderStatusRequest	true	"New status"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		403			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/manager/orders/{order_id}/status [patch]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateOrderStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	existing, err := app.orderService.Get(r.Context(), orderID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	claims := claimsFromContext(r.Context())
	if !canManageOutlet(claims, existing.OutletID) {
		app.forbiddenResponse(w, r)
		return
	}

	order, err := app.orderService.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "order status updated", order); err != nil {
		app.internalServerError(w, r, err)
	}
}
