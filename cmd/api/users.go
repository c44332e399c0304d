package main

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/auth"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

type CreateUserRequest struct {
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	Role      string   `json:"role" validate:"required,oneof=SUPER_ADMIN OUTLET_MANAGER"`
	OutletIDs []string `json:"outlet_ids"`
}

// createUserHandler godoc
//
//	@Summary		Create a user
//	@Description	Creates an admin or outlet manager account. Managers are scoped to their assigned outlets.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateUserRequest	true	"New user"
//	@Success		201		{object}	domain.User
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/users [post]
func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	outletIDs := make([]primitive.ObjectID, 0, len(req.OutletIDs))
	for _, raw := range req.OutletIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		outletIDs = append(outletIDs, id)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Role:      domain.Role(req.Role),
		OutletIDs: outletIDs,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := app.userRepo.Create(r.Context(), user); err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, "user created", user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listUsersHandler godoc
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/users [get]
func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.userRepo.List(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "", users); err != nil {
		app.internalServerError(w, r, err)
	}
}
