package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

type CreatePriceRequestRequest struct {
	OutletID      string  `json:"outlet_id" validate:"required"`
	MenuItemID    string  `json:"menu_item_id" validate:"required"`
	ProposedPrice float64 `json:"proposed_price" validate:"gte=0"`
}

type RejectPriceRequestRequest struct {
	Reason string `json:"reason"`
}

// createPriceRequestHandler godoc
//
//	@Summary		Propose a price change
//	@Description	Opens a pending price change request for one outlet and item. At most one pending request may exist per pair.
//	@Tags			price-requests
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreatePriceRequestRequest	true	"Proposal"
//	@Success		201		{object}	domain.PriceChangeRequest
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/manager/price-requests [post]
func (app *application) createPriceRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req CreatePriceRequestRequest
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

	menuItemID, err := primitive.ObjectIDFromHex(req.MenuItemID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	claims := claimsFromContext(r.Context())
	if !canManageOutlet(claims, outletID) {
		app.forbiddenResponse(w, r)
		return
	}

	managerID, err := claimsUserID(claims)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	request, err := app.governanceService.CreateRequest(r.Context(), outletID, menuItemID, managerID, req.ProposedPrice)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, "price change request created", request); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listPendingRequestsHandler godoc
//
//	@Summary		List pending price requests
//	@Tags			price-requests
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/price-requests/pending [get]
func (app *application) listPendingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	requests, err := app.governanceService.ListPending(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "", requests); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listPriceRequestsHandler godoc
//
//	@Summary		List price requests
//	@Description	Lists price change requests, optionally filtered by status
//	@Tags			price-requests
//	@Produce		json
//	@Param			status	query		string	false	"pending, approved or rejected"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/price-requests [get]
func (app *application) listPriceRequestsHandler(w http.ResponseWriter, r *http.Request) {
	status := domain.PriceRequestStatus(r.URL.Query().Get("status"))

	requests, err := app.governanceService.ListAll(r.Context(), status)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "", requests); err != nil {
		app.internalServerError(w, r, err)
	}
}

// approvePriceRequestHandler godoc
//
//	@Summary		Approve a price request
//	@Description	Marks the request approved and applies the proposed price to the outlet's override atomically
//	@Tags			price-requests
//	@Produce		json
//	@Param			request_id	path		string	true	"Request ID"
//	@Success		200			{object}	domain.PriceChangeRequest
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/price-requests/{request_id}/approve [put]
func (app *application) approvePriceRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "request_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	claims := claimsFromContext(r.Context())
	adminID, err := claimsUserID(claims)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	request, err := app.governanceService.Approve(r.Context(), requestID, adminID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "price change approved", request); err != nil {
		app.internalServerError(w, r, err)
	}
}

// rejectPriceRequestHandler godoc
//
//	@Summary		Reject a price request
//	@Description	Marks the request rejected with a reason. The outlet's pricing is left untouched.
//	@Tags			price-requests
//	@Accept			json
//	@Produce		json
//	@Param			request_id	path		string						true	"Request ID"
//	@Param			request		body		RejectPriceRequestRequest	false	"Rejection reason"
//	@Success		200			{object}	domain.PriceChangeRequest
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/price-requests/{request_id}/reject [put]
func (app *application) rejectPriceRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "request_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	// the reason is optional; an absent body counts as no reason
	var req RejectPriceRequestRequest
	if err := readJson(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		app.badRequestResponse(w, r, err)
		return
	}

	claims := claimsFromContext(r.Context())
	adminID, err := claimsUserID(claims)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	request, err := app.governanceService.Reject(r.Context(), requestID, adminID, req.Reason)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "price change rejected", request); err != nil {
		app.internalServerError(w, r, err)
	}
}
