package main

import (
	"net/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateImportTaskRequest struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"required"`
}

// createImportTaskHandler godoc
//
//	@Summary		Queue a catalog import
//	@Description	Creates a bulk catalog import task from a Google Sheet
//	@Tags			imports
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateImportTaskRequest	true	"Import request"
//	@Success		201		{object}	map[string]string
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/menu/import [post]
func (app *application) createImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateImportTaskRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	taskID, err := app.importService.CreateImportTask(r.Context(), req.SpreadsheetID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	response := map[string]string{
		"task_id": taskID.Hex(),
		"status":  "queued",
	}

	if err := app.jsonResponse(w, http.StatusCreated, "import task created", response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getImportTaskHandler godoc
//
//	@Summary		Get import task status
//	@Tags			imports
//	@Produce		json
//	@Param			task_id	path		string	true	"Task ID"
//	@Success		200		{object}	domain.ImportTask
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/menu/import/{task_id} [get]
func (app *application) getImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "task_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	task, err := app.importService.GetTask(r.Context(), taskID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "", task); err != nil {
		app.internalServerError(w, r, err)
	}
}
