package main

// @title Warehouse Inventory API
// @version 1.0
// @description Warehouse inventory service: items, stock actions, low-stock alerts, reports, audit trail and realtime updates
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tair/warehouse-inventory
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/tair/warehouse-inventory/blob/main/LICENSE

// @host localhost:8082
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Registration and login

// @tag.name Users
// @tag.description Profile of the authenticated user

// @tag.name Admin
// @tag.description User management (Admin only)

// @tag.name Inventory
// @tag.description Items, stock actions and bulk operations

// @tag.name Alerts
// @tag.description Low-stock alerts

// @tag.name Reports
// @tag.description Inventory reports and exports

// @tag.name Audit
// @tag.description Audit trail (Admin only)

// @tag.name Health
// @tag.description Health check endpoints
