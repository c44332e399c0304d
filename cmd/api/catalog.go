package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/service"
)

type CreateMenuItemRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"base_price" validate:"gte=0"`
	Image       string   `json:"image"`
	Category    string   `json:"category" validate:"required"`
	Pieces      *int     `json:"pieces,omitempty"`
	Tags        []string `json:"tags"`
	IsVeg       bool     `json:"is_veg"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	BasePrice   *float64 `json:"base_price,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Pieces      *int     `json:"pieces,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsVeg       *bool    `json:"is_veg,omitempty"`
}

// listCatalogHandler godoc
//
//	@Summary		List catalog items
//	@Description	Lists global catalog items with filtering, sorting and pagination
//	@Tags			catalog
//	@Produce		json
//	@Param			search		query		string	false	"Name search"
//	@Param			category	query		string	false	"Category filter"
//	@Param			tags		query		string	false	"Comma-separated tag filter"
//	@Param			is_veg		query		bool	false	"Veg filter"
//	@Param			sort		query		string	false	"priceAsc or priceDesc"
//	@Param			page		query		int		false	"Page number"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		500			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/menu [get]
func (app *application) listCatalogHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.MenuItemFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     domain.MenuItemSort(q.Get("sort")),
	}

	if tags := q.Get("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	if v := q.Get("is_veg"); v != "" {
		isVeg, err := strconv.ParseBool(v)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		filter.IsVeg = &isVeg
	}

	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	items, total, err := app.catalogService.ListItems(r.Context(), filter)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"items": items,
		"total": total,
	}

	if err := app.jsonResponse(w, http.StatusOK, "", response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createMenuItemHandler godoc
//
//	@Summary		Create a catalog item
//	@Description	Adds a global catalog item shared by all outlets
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateMenuItemRequest	true	"New item"
//	@Success		201		{object}	domain.MenuItem
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/menu [post]
func (app *application) createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.catalogService.CreateItem(r.Context(), service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Image:       req.Image,
		Category:    req.Category,
		Pieces:      req.Pieces,
		Tags:        req.Tags,
		IsVeg:       req.IsVeg,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, "item created", item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateMenuItemHandler godoc
//
//	@Summary		Update a catalog item
//	@Description	Partially updates a catalog item. Omitted fields are left untouched.
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string					true	"Menu item ID"
//	@Param			request	body		UpdateMenuItemRequest	true	"Fields to update"
//	@Success		200		{object}	domain.MenuItem
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/menu/{item_id} [put]
func (app *application) updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateMenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.catalogService.UpdateItem(r.Context(), itemID, service.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Image:       req.Image,
		Category:    req.Category,
		Pieces:      req.Pieces,
		Tags:        req.Tags,
		IsVeg:       req.IsVeg,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "item updated", item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getItemAuditHandler godoc
//
//	@Summary		Get an item's change history
//	@Description	Lists recorded price decisions and availability toggles for a catalog item
//	@Tags			catalog
//	@Produce		json
//	@Param			item_id	path		string	true	"Menu item ID"
//	@Param			limit	query		int		false	"Max entries"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/menu/{item_id}/audit [get]
func (app *application) getItemAuditHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := app.auditService.GetItemAudit(r.Context(), itemID, limit)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "", entries); err != nil {
		app.internalServerError(w, r, err)
	}
}
