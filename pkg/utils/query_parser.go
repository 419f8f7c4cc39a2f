package utils

import (
	"net/url"
	"strconv"

	"compuscan/pkg/types"
)

const defaultPerPage = 50

// ParseFilterFromQuery reads search/page/per_page from the query string.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filter := types.Filter{
		Search: values.Get("search"),
		Limit:  defaultPerPage,
	}

	if perPage, err := strconv.ParseUint(values.Get("per_page"), 10, 64); err == nil && perPage > 0 {
		filter.Limit = perPage
	}

	if page, err := strconv.ParseUint(values.Get("page"), 10, 64); err == nil && page > 1 {
		filter.Offset = (page - 1) * filter.Limit
	}

	return filter
}
