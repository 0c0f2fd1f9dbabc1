package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/database"
)

// GormStore implements domain.Store on top of a gorm session
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new store bound to db
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Items() domain.ItemRepository {
	return &GormItemRepository{db: s.db}
}

func (s *GormStore) Actions() domain.ActionRepository {
	return &GormActionRepository{db: s.db}
}

// Transaction runs fn inside a database transaction
func (s *GormStore) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// AutoMigrate runs database migrations
func (s *GormStore) AutoMigrate() error {
	return database.AutoMigrate(s.db, &domain.Item{}, &domain.Action{})
}

// GormItemRepository implements domain.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

func (r *GormItemRepository) Create(ctx context.Context, item *domain.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.Conflict("Item with SKU %s already exists", item.SKU)
		}
		return apperror.Internal(err, "failed to create item")
	}
	return nil
}

func (r *GormItemRepository) CreateBatch(ctx context.Context, items []*domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.Conflict("One or more SKUs already exist")
		}
		return apperror.Internal(err, "failed to create items")
	}
	return nil
}

func (r *GormItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	if !domain.ValidID(id) {
		return nil, apperror.NotFound("Item %s not found", id)
	}
	return r.first(r.db.WithContext(ctx).Where("id = ?", id), "Item %s not found", id)
}

func (r *GormItemRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Item, error) {
	if !domain.ValidID(id) {
		return nil, apperror.NotFound("Item %s not found", id)
	}
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id)
	return r.first(query, "Item %s not found", id)
}

func (r *GormItemRepository) FindBySKU(ctx context.Context, sku string) (*domain.Item, error) {
	return r.first(r.db.WithContext(ctx).Where("sku = ?", sku), "Item with SKU %s not found", sku)
}

func (r *GormItemRepository) first(query *gorm.DB, format string, arg string) (*domain.Item, error) {
	var item domain.Item
	if err := query.First(&item).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound(format, arg)
		}
		return nil, apperror.Internal(err, "failed to find item")
	}
	return &item, nil
}

func (r *GormItemRepository) FindExistingSKUs(ctx context.Context, skus []string) ([]string, error) {
	var existing []string
	if len(skus) == 0 {
		return existing, nil
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Item{}).
		Where("sku IN ?", skus).
		Order("sku").
		Pluck("sku", &existing).Error
	if err != nil {
		return nil, apperror.Internal(err, "failed to check existing SKUs")
	}
	return existing, nil
}

func (r *GormItemRepository) FindAll(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, int64, error) {
	query := applyItemFilter(r.db.WithContext(ctx).Model(&domain.Item{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to count items")
	}

	query = query.Order(itemOrder(filter))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []domain.Item
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to list items")
	}
	return items, total, nil
}

// FindLowStock compares stock_level with min_stock in SQL instead of loading every item
func (r *GormItemRepository) FindLowStock(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	filter.LowStockOnly = true
	query := applyItemFilter(r.db.WithContext(ctx).Model(&domain.Item{}), filter).
		Order("stock_level ASC").
		Order("name ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []domain.Item
	if err := query.Find(&items).Error; err != nil {
		return nil, apperror.Internal(err, "failed to list low stock items")
	}
	return items, nil
}

func (r *GormItemRepository) Update(ctx context.Context, item *domain.Item) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.Conflict("Item with SKU %s already exists", item.SKU)
		}
		return apperror.Internal(err, "failed to update item")
	}
	return nil
}

func (r *GormItemRepository) UpdateStockLevel(ctx context.Context, id string, stockLevel int) error {
	if !domain.ValidID(id) {
		return apperror.NotFound("Item %s not found", id)
	}
	result := r.db.WithContext(ctx).
		Model(&domain.Item{}).
		Where("id = ?", id).
		Update("stock_level", stockLevel)
	if result.Error != nil {
		return apperror.Internal(result.Error, "failed to update stock level")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Item %s not found", id)
	}
	return nil
}

// DeleteByIDs ignores ids that are not uuids; they cannot name an item
func (r *GormItemRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	ids = domain.ValidIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Item{})
	if result.Error != nil {
		return 0, apperror.Internal(result.Error, "failed to delete items")
	}
	return result.RowsAffected, nil
}

func (r *GormItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Item{}).Count(&count).Error; err != nil {
		return 0, apperror.Internal(err, "failed to count items")
	}
	return count, nil
}

// GormActionRepository implements domain.ActionRepository using GORM
type GormActionRepository struct {
	db *gorm.DB
}

func (r *GormActionRepository) Create(ctx context.Context, action *domain.Action) error {
	if err := r.db.WithContext(ctx).Omit("Item").Create(action).Error; err != nil {
		if action.EventID != nil && database.IsUniqueViolation(err) {
			return apperror.Conflict("Event %s already applied", *action.EventID)
		}
		return apperror.Internal(err, "failed to record action")
	}
	return nil
}

func (r *GormActionRepository) FindAll(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Action{})

	if filter.ItemID != "" {
		if !domain.ValidID(filter.ItemID) {
			return []domain.Action{}, 0, nil
		}
		query = query.Where("actions.item_id = ?", filter.ItemID)
	}
	if filter.UserID != "" {
		query = query.Where("actions.user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("actions.type = ?", filter.Type)
	}
	if filter.StartDate != nil {
		query = query.Where("actions.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("actions.created_at <= ?", *filter.EndDate)
	}
	if filter.Category != "" || filter.Location != "" {
		query = query.Joins("JOIN items ON items.id = actions.item_id")
		if filter.Category != "" {
			query = query.Where("items.category ILIKE ?", containsPattern(filter.Category))
		}
		if filter.Location != "" {
			query = query.Where("items.location ILIKE ?", containsPattern(filter.Location))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to count actions")
	}

	query = query.Order("actions.created_at DESC")
	if filter.IncludeItem {
		query = query.Preload("Item")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var actions []domain.Action
	if err := query.Find(&actions).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to list actions")
	}
	return actions, total, nil
}

func (r *GormActionRepository) FindByEventID(ctx context.Context, eventID string) (*domain.Action, error) {
	var action domain.Action
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&action).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound("No action for event %s", eventID)
		}
		return nil, apperror.Internal(err, "failed to find action")
	}
	return &action, nil
}

func (r *GormActionRepository) DeleteByItemIDs(ctx context.Context, itemIDs []string) (int64, error) {
	itemIDs = domain.ValidIDs(itemIDs)
	if len(itemIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Delete(&domain.Action{})
	if result.Error != nil {
		return 0, apperror.Internal(result.Error, "failed to delete actions")
	}
	return result.RowsAffected, nil
}

func (r *GormActionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&domain.Action{})
	if result.Error != nil {
		return 0, apperror.Internal(result.Error, "failed to prune actions")
	}
	return result.RowsAffected, nil
}

func (r *GormActionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Action{}).Count(&count).Error; err != nil {
		return 0, apperror.Internal(err, "failed to count actions")
	}
	return count, nil
}

func applyItemFilter(query *gorm.DB, filter domain.ItemFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("(name ILIKE ? OR sku ILIKE ? OR description ILIKE ?)", pattern, pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category ILIKE ?", containsPattern(filter.Category))
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", containsPattern(filter.Location))
	}
	if len(filter.ItemIDs) > 0 {
		ids := domain.ValidIDs(filter.ItemIDs)
		if len(ids) == 0 {
			return query.Where("1 = 0")
		}
		query = query.Where("id IN ?", ids)
	}
	if filter.LowStockOnly {
		query = query.Where("stock_level <= min_stock")
	}
	return query
}

var sortableColumns = map[string]string{
	"name":        "name",
	"sku":         "sku",
	"category":    "category",
	"location":    "location",
	"stock_level": "stock_level",
	"min_stock":   "min_stock",
	"unit_price":  "unit_price",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}

func itemOrder(filter domain.ItemFilter) string {
	column, ok := sortableColumns[filter.SortBy]
	if !ok {
		return "created_at DESC"
	}
	if filter.SortDesc {
		return fmt.Sprintf("%s DESC", column)
	}
	return fmt.Sprintf("%s ASC", column)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
