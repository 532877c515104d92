package repository

import (
	"strconv"
	"strings"
)

// Pagination defaults. Malformed or non-positive limit/page input falls
// back silently instead of erroring; this leniency is observable,
// documented behavior and must not be "fixed".
const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// PageOptions carries raw, unparsed query options for a paginated list.
// SortBy is a comma-separated list of field:direction pairs; Limit and
// Page arrive as strings straight from the query layer.
type PageOptions struct {
	SortBy string
	Limit  string
	Page   string
}

// sortColumns whitelists the sort fields callers may reference and maps
// them to their column names. Anything else is rejected rather than
// spliced into the ORDER BY clause.
var sortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// parsePositive parses s as a positive integer, falling back to def on
// anything malformed or <= 0.
func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// parseLimitPage resolves the effective limit and page for a query.
func parseLimitPage(opts PageOptions) (limit, page int) {
	return parsePositive(opts.Limit, DefaultLimit), parsePositive(opts.Page, DefaultPage)
}

// buildOrderBy turns "field:direction,field:direction" into a safe ORDER
// BY clause. Each pair is validated independently; an unknown field or
// direction fails the whole request with ErrInvalidSort. An empty SortBy
// sorts by creation time ascending.
func buildOrderBy(sortBy string) (string, error) {
	if strings.TrimSpace(sortBy) == "" {
		return "created_at ASC", nil
	}
	var clauses []string
	for _, pair := range strings.Split(sortBy, ",") {
		field, dir, _ := strings.Cut(strings.TrimSpace(pair), ":")
		col, ok := sortColumns[field]
		if !ok {
			return "", ErrInvalidSort
		}
		switch strings.ToLower(dir) {
		case "asc", "":
			clauses = append(clauses, col+" ASC")
		case "desc":
			clauses = append(clauses, col+" DESC")
		default:
			return "", ErrInvalidSort
		}
	}
	return strings.Join(clauses, ", "), nil
}

// totalPages is ceil(total/limit) without floating point.
func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}
