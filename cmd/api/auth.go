package main

import (
	"net/http"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/auth"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// loginHandler godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if err == domain.ErrNotFound {
			app.unauthorizedError(w, r, domain.ErrInvalidLogin)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		app.unauthorizedError(w, r, domain.ErrInvalidLogin)
		return
	}

	token, err := app.authenticator.GenerateToken(user)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := LoginResponse{
		Token: token,
		User:  *user,
	}

	if err := app.jsonResponse(w, http.StatusOK, "logged in", response); err != nil {
		app.internalServerError(w, r, err)
	}
}
