package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// sortColumns guards ORDER BY clauses against injection; only listed columns
// are accepted, anything else falls back to created_at.
var sortColumns = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"title":            true,
	"published_at":     true,
	"completed_at":     true,
	"total_score":      true,
	"participant_name": true,
	"position":         true,
}

func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	if sortBy == "" || !sortColumns[sortBy] {
		sortBy = "created_at"
	}
	if !strings.EqualFold(sortOrder, "asc") {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
