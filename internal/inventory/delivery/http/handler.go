package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/internal/httpx"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/usecase/command"
	"github.com/tair/warehouse-inventory/internal/inventory/usecase/query"
	"github.com/tair/warehouse-inventory/internal/middleware"
)

// InventoryHandler handles HTTP requests for items, stock actions and bulk operations
type InventoryHandler struct {
	// Command handlers
	applyHandler      *command.ApplyStockActionHandler
	createHandler     *command.CreateItemHandler
	updateHandler     *command.UpdateItemHandler
	deleteHandler     *command.DeleteItemHandler
	bulkCreateHandler *command.BulkCreateHandler
	bulkUpdateHandler *command.BulkUpdateHandler
	bulkStockHandler  *command.BulkStockUpdateHandler
	bulkDeleteHandler *command.BulkDeleteHandler

	// Query handlers
	getHandler      *query.GetItemHandler
	listHandler     *query.ListItemsHandler
	lowStockHandler *query.ListLowStockHandler
	actionsHandler  *query.ListActionsHandler
	historyHandler  *query.GetItemHistoryHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	applyHandler *command.ApplyStockActionHandler,
	createHandler *command.CreateItemHandler,
	updateHandler *command.UpdateItemHandler,
	deleteHandler *command.DeleteItemHandler,
	bulkCreateHandler *command.BulkCreateHandler,
	bulkUpdateHandler *command.BulkUpdateHandler,
	bulkStockHandler *command.BulkStockUpdateHandler,
	bulkDeleteHandler *command.BulkDeleteHandler,
	getHandler *query.GetItemHandler,
	listHandler *query.ListItemsHandler,
	lowStockHandler *query.ListLowStockHandler,
	actionsHandler *query.ListActionsHandler,
	historyHandler *query.GetItemHistoryHandler,
) *InventoryHandler {
	return &InventoryHandler{
		applyHandler:      applyHandler,
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deleteHandler:     deleteHandler,
		bulkCreateHandler: bulkCreateHandler,
		bulkUpdateHandler: bulkUpdateHandler,
		bulkStockHandler:  bulkStockHandler,
		bulkDeleteHandler: bulkDeleteHandler,
		getHandler:        getHandler,
		listHandler:       listHandler,
		lowStockHandler:   lowStockHandler,
		actionsHandler:    actionsHandler,
		historyHandler:    historyHandler,
	}
}

// RegisterRoutes registers all inventory routes. limit wraps mutating routes.
func (h *InventoryHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, limit mux.MiddlewareFunc) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	// Authenticated routes
	router.Handle("/api/inventory", authn.Auth(h.ListItems)).Methods("GET")
	router.Handle("/api/inventory/low-stock", authn.Auth(h.ListLowStock)).Methods("GET")
	router.Handle("/api/inventory/{id}", authn.Auth(h.GetItem)).Methods("GET")
	router.Handle("/api/inventory/{id}/actions", authn.RequireAuth(limit(http.HandlerFunc(h.ApplyStockAction)))).Methods("POST")
	router.Handle("/api/inventory/{id}/actions", authn.Auth(h.GetItemHistory)).Methods("GET")
	router.Handle("/api/actions", authn.Auth(h.ListActions)).Methods("GET")

	// Admin routes
	router.Handle("/api/inventory", authn.RequireAdmin(limit(http.HandlerFunc(h.CreateItem)))).Methods("POST")
	router.Handle("/api/inventory/{id}", authn.RequireAdmin(limit(http.HandlerFunc(h.UpdateItem)))).Methods("PUT")
	router.Handle("/api/inventory/{id}", authn.RequireAdmin(limit(http.HandlerFunc(h.DeleteItem)))).Methods("DELETE")
	router.Handle("/api/bulk/items", authn.RequireAdmin(limit(http.HandlerFunc(h.BulkCreate)))).Methods("POST")
	router.Handle("/api/bulk/items", authn.RequireAdmin(limit(http.HandlerFunc(h.BulkUpdate)))).Methods("PUT")
	router.Handle("/api/bulk/stock", authn.RequireAdmin(limit(http.HandlerFunc(h.BulkStockUpdate)))).Methods("PUT")
	router.Handle("/api/bulk/items", authn.RequireAdmin(limit(http.HandlerFunc(h.BulkDelete)))).Methods("DELETE")
}

func actorFrom(r *http.Request) domain.Actor {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	return domain.ActorFromClaims(claims)
}

// ListItems handles GET /api/inventory
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := httpx.Pagination(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	q := r.URL.Query()
	page, err := h.listHandler.Handle(r.Context(), query.ListItemsQuery{
		Search:       q.Get("search"),
		Category:     q.Get("category"),
		Location:     q.Get("location"),
		LowStockOnly: httpx.BoolParam(r, "low_stock"),
		SortBy:       q.Get("sort_by"),
		SortDesc:     strings.EqualFold(q.Get("sort_order"), "desc"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", page)
}

// ListLowStock handles GET /api/inventory/low-stock
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := httpx.Pagination(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	items, err := h.lowStockHandler.Handle(r.Context(), query.ListLowStockQuery{
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", items)
}

// GetItem handles GET /api/inventory/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.getHandler.Handle(r.Context(), query.GetItemQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", item)
}

// CreateItem handles POST /api/inventory
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req command.ItemInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	item, err := h.createHandler.Handle(r.Context(), command.CreateItemCommand{Input: req, Actor: actorFrom(r)})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusCreated, "Item created successfully", item)
}

// UpdateItem handles PUT /api/inventory/{id}
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req command.ItemPatch
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	item, err := h.updateHandler.Handle(r.Context(), command.UpdateItemCommand{
		ID:    mux.Vars(r)["id"],
		Patch: req,
		Actor: actorFrom(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "Item updated successfully", item)
}

// DeleteItem handles DELETE /api/inventory/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	err := h.deleteHandler.Handle(r.Context(), command.DeleteItemCommand{
		ID:    mux.Vars(r)["id"],
		Actor: actorFrom(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "Item deleted successfully", nil)
}

type stockActionRequest struct {
	Type     domain.ActionType `json:"type"`
	Quantity int               `json:"quantity"`
	Notes    string            `json:"notes,omitempty"`
}

// ApplyStockAction handles POST /api/inventory/{id}/actions
func (h *InventoryHandler) ApplyStockAction(w http.ResponseWriter, r *http.Request) {
	var req stockActionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.applyHandler.Handle(r.Context(), command.ApplyStockActionCommand{
		ItemID:   mux.Vars(r)["id"],
		Type:     req.Type,
		Quantity: req.Quantity,
		Notes:    req.Notes,
		Actor:    actorFrom(r),
		Source:   command.SourceHTTP,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "Stock updated successfully", result)
}

// GetItemHistory handles GET /api/inventory/{id}/actions
func (h *InventoryHandler) GetItemHistory(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := httpx.Pagination(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	history, err := h.historyHandler.Handle(r.Context(), query.GetItemHistoryQuery{
		ItemID: mux.Vars(r)["id"],
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", history)
}

// ListActions handles GET /api/actions
func (h *InventoryHandler) ListActions(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := httpx.Pagination(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	start, end, err := httpx.DateRange(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	q := r.URL.Query()
	page, err := h.actionsHandler.Handle(r.Context(), query.ListActionsQuery{
		ItemID:    q.Get("item_id"),
		UserID:    q.Get("user_id"),
		Type:      domain.ActionType(q.Get("type")),
		Category:  q.Get("category"),
		Location:  q.Get("location"),
		StartDate: start,
		EndDate:   end,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", page)
}

// BulkCreate handles POST /api/bulk/items
func (h *InventoryHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []command.ItemInput `json:"items"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	items, err := h.bulkCreateHandler.Handle(r.Context(), command.BulkCreateCommand{Items: req.Items, Actor: actorFrom(r)})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusCreated, "Items created successfully", map[string]interface{}{
		"created_count": len(items),
		"items":         items,
	})
}

// BulkUpdate handles PUT /api/bulk/items
func (h *InventoryHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Updates []command.BulkUpdateEntry `json:"updates"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	items, err := h.bulkUpdateHandler.Handle(r.Context(), command.BulkUpdateCommand{Updates: req.Updates, Actor: actorFrom(r)})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "Items updated successfully", map[string]interface{}{
		"updated_count": len(items),
		"items":         items,
	})
}

// BulkStockUpdate handles PUT /api/bulk/stock
func (h *InventoryHandler) BulkStockUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Updates []command.StockUpdateEntry `json:"updates"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	items, err := h.bulkStockHandler.Handle(r.Context(), command.BulkStockUpdateCommand{Updates: req.Updates, Actor: actorFrom(r)})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "Stock levels updated successfully", map[string]interface{}{
		"updated_count": len(items),
		"items":         items,
	})
}

// BulkDelete handles DELETE /api/bulk/items
func (h *InventoryHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.bulkDeleteHandler.Handle(r.Context(), command.BulkDeleteCommand{IDs: req.IDs, Actor: actorFrom(r)})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "Items deleted successfully", result)
}
