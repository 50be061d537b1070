package persistence

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/printmarket/backend/internal/domain/shared"
)

// sortableColumns is the allow-list for ORDER BY. Anything else falls back
// to created_at so filter input can never inject SQL.
var sortableColumns = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"order_number":     true,
	"status":           true,
	"total_amount":     true,
	"rating":           true,
	"completed_orders": true,
	"requested_at":     true,
	"occurred_at":      true,
}

// applyFilter applies ordering and pagination on top of applyFilterConditions
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyFilterConditions(query, filter)

	orderBy := "created_at"
	if filter.OrderBy != "" && sortableColumns[filter.OrderBy] {
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		orderDir = "ASC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterConditions applies the generic key/value conditions shared by
// all aggregates; columns keyed here exist on every filtered table.
func applyFilterConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}
	return query
}
