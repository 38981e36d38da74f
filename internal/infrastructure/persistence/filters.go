package persistence

import (
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedOrderColumns whitelists sortable columns per table to keep
// user-supplied OrderBy values out of raw SQL.
var allowedOrderColumns = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"order_number":     true,
	"document_number":  true,
	"payment_number":   true,
	"payment_date":     true,
	"issue_date":       true,
	"due_date":         true,
	"transaction_date": true,
	"status":           true,
	"total_amount":     true,
	"balance_amount":   true,
	"current_stock":    true,
	"balance":          true,
}

// applyPagination applies page/size and ordering from the filter.
// Ordering falls back to defaultOrder when the filter names no column
// or names one outside the whitelist.
func applyPagination(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	if orderBy == "" || !allowedOrderColumns[orderBy] {
		return query.Order(defaultOrder)
	}

	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}
