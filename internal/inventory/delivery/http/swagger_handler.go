package http

// ListItems godoc
// @Summary List items
// @Description Paginated item listing with search, category/location substring filters and sorting
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param search query string false "Matches name, SKU or description"
// @Param category query string false "Category substring"
// @Param location query string false "Location substring"
// @Param low_stock query bool false "Only items at or below min stock"
// @Param sort_by query string false "name, sku, category, location, stock_level, min_stock, unit_price, created_at, updated_at"
// @Param sort_order query string false "asc or desc"
// @Param limit query int false "Limit (default 10, max 100)"
// @Param offset query int false "Offset"
// @Param page query int false "1-based page, used when offset is absent"
// @Success 200 {object} object{success=bool,data=object{items=array,total=int,limit=int,offset=int}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/inventory [get]
func (h *InventoryHandler) ListItemsDoc() {}

// ListLowStock godoc
// @Summary List low stock items
// @Description Items whose stock level is at or below min stock, lowest first
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param category query string false "Category substring"
// @Param location query string false "Location substring"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStockDoc() {}

// GetItem godoc
// @Summary Get item by ID
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id} [get]
func (h *InventoryHandler) GetItemDoc() {}

// CreateItem godoc
// @Summary Create item
// @Description Create a new item (Admin only). Non-zero initial stock is recorded as an ADD_STOCK action.
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{sku=string,name=string,description=string,category=string,location=string,stock_level=int,min_stock=int,max_stock=int,unit_price=string} true "Item data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/inventory [post]
func (h *InventoryHandler) CreateItemDoc() {}

// UpdateItem godoc
// @Summary Update item
// @Description Update descriptive fields of an item (Admin only). Stock level changes go through stock actions.
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body object{sku=string,name=string,description=string,category=string,location=string,min_stock=int,max_stock=int,unit_price=string} true "Fields to change"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/inventory/{id} [put]
func (h *InventoryHandler) UpdateItemDoc() {}

// DeleteItem godoc
// @Summary Delete item
// @Description Delete an item and its action history (Admin only)
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id} [delete]
func (h *InventoryHandler) DeleteItemDoc() {}

// ApplyStockAction godoc
// @Summary Apply stock action
// @Description ADD_STOCK, REMOVE_STOCK and TRANSFER move stock by quantity; ADJUST_STOCK sets the level to quantity
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body object{type=string,quantity=int,notes=string} true "Stock action"
// @Success 200 {object} object{success=bool,message=string,data=object{item=object,action=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/inventory/{id}/actions [post]
func (h *InventoryHandler) ApplyStockActionDoc() {}

// GetItemHistory godoc
// @Summary Item action history
// @Tags Stock
// @Security BearerAuth
// @Produce json
// @Param id path string true "Item ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{item=object,actions=object}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id}/actions [get]
func (h *InventoryHandler) GetItemHistoryDoc() {}

// ListActions godoc
// @Summary List stock actions
// @Tags Stock
// @Security BearerAuth
// @Produce json
// @Param item_id query string false "Item ID"
// @Param user_id query string false "User ID"
// @Param type query string false "Action type"
// @Param category query string false "Item category substring"
// @Param location query string false "Item location substring"
// @Param start_date query string false "YYYY-MM-DD or RFC3339"
// @Param end_date query string false "YYYY-MM-DD or RFC3339"
// @Success 200 {object} object{success=bool,data=object{items=array,total=int,limit=int,offset=int}}
// @Router /api/actions [get]
func (h *InventoryHandler) ListActionsDoc() {}

// BulkCreate godoc
// @Summary Bulk create items
// @Description Create up to 50 items atomically (Admin only)
// @Tags Bulk
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{items=array} true "Items"
// @Success 201 {object} object{success=bool,message=string,data=object{created_count=int,items=array}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/bulk/items [post]
func (h *InventoryHandler) BulkCreateDoc() {}

// BulkUpdate godoc
// @Summary Bulk update items
// @Description Apply up to 100 partial updates atomically (Admin only)
// @Tags Bulk
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{updates=array} true "Updates, each with an id"
// @Success 200 {object} object{success=bool,message=string,data=object{updated_count=int,items=array}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/bulk/items [put]
func (h *InventoryHandler) BulkUpdateDoc() {}

// BulkStockUpdate godoc
// @Summary Bulk stock update
// @Description Set up to 100 stock levels atomically (Admin only)
// @Tags Bulk
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{updates=array} true "Updates with id, stock_level and optional type"
// @Success 200 {object} object{success=bool,message=string,data=object{updated_count=int,items=array}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/bulk/stock [put]
func (h *InventoryHandler) BulkStockUpdateDoc() {}

// BulkDelete godoc
// @Summary Bulk delete items
// @Description Delete up to 50 items and their actions atomically (Admin only). Unknown ids are skipped.
// @Tags Bulk
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{ids=array} true "Item IDs"
// @Success 200 {object} object{success=bool,message=string,data=object{requested_count=int,deleted_count=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/bulk/items [delete]
func (h *InventoryHandler) BulkDeleteDoc() {}
