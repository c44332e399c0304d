package main

import (
	"net/http"
	"time"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

type CreateOutletRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=cloud_kitchen dine_in hybrid"`
	PhoneNumber string `json:"phone_number"`
}

// createOutletHandler godoc
//
//	@Summary		Create an outlet
//	@Tags			outlets
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOutletRequest	true	"New outlet"
//	@Success		201		{object}	domain.Outlet
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/outlets [post]
func (app *application) createOutletHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOutletRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	outlet := &domain.Outlet{
		Name:        req.Name,
		Address:     req.Address,
		Type:        domain.OutletType(req.Type),
		PhoneNumber: req.PhoneNumber,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := app.outletRepo.Create(r.Context(), outlet); err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, "outlet created", outlet); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOutletsHandler godoc
//
//	@Summary		List outlets
//	@Tags			outlets
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/outlets [get]
func (app *application) listOutletsHandler(w http.ResponseWriter, r *http.Request) {
	outlets, err := app.outletRepo.List(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "", outlets); err != nil {
		app.internalServerError(w, r, err)
	}
}
