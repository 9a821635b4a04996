package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// defaultLimit is the number of resources returned when the limit parameter is not set.
const defaultLimit = 50

// textFilter restricts the query to rows where column contains value.
//
// If the parameter is set in the query string but empty, only rows
// where the column is empty match.
func textFilter(query *gorm.DB, setFields []string, field, column, value string) *gorm.DB {
	if value != "" {
		return query.Where(fmt.Sprintf("%s LIKE ?", column), fmt.Sprintf("%%%s%%", value))
	}

	if slices.Contains(setFields, field) {
		return query.Where(fmt.Sprintf("%s = ''", column))
	}

	return query
}

// searchFilter restricts the query to rows where any of the columns contains search.
func searchFilter(db, query *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return query
	}

	cond := db.Where(fmt.Sprintf("%s LIKE ?", columns[0]), fmt.Sprintf("%%%s%%", search))
	for _, column := range columns[1:] {
		cond = cond.Or(db.Where(fmt.Sprintf("%s LIKE ?", column), fmt.Sprintf("%%%s%%", search)))
	}

	return query.Where(cond)
}

// find executes the query with offset and limit and returns the resources
// together with the pagination information.
func find[T any](query *gorm.DB, setFields []string, offset uint, limit int) ([]T, Pagination, error) {
	if !slices.Contains(setFields, "Limit") {
		limit = defaultLimit
	}

	var resources []T
	err := query.Offset(int(offset)).Limit(limit).Find(&resources).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	var total int64
	err = query.Limit(-1).Offset(-1).Count(&total).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return resources, Pagination{
		Count:  len(resources),
		Offset: offset,
		Limit:  limit,
		Total:  total,
	}, nil
}
