package api

import (
	"strconv"
	"strings"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/abs-insurance-api/domain"
)

// QueryParams contains criteria to limit the results of List endpoints
type QueryParams struct {
	// searchText is matched against the record name
	searchText string

	// recordLimit sets the number of records returned in a single page. Minimum is 1, maximum is MAX_PAGE_SIZE
	recordLimit int

	// page sets the pagination slice for the query, starting at 1
	page int
}

func (q QueryParams) Limit() int {
	l := q.recordLimit
	if l < 1 {
		l = 1
	}
	if max := domain.Env.MaxPageSize; max > 0 && l > max {
		l = max
	}
	return l
}

func (q QueryParams) Page() int {
	if q.page < 1 {
		return 1
	}
	return q.page
}

func (q QueryParams) Search() string {
	return q.searchText
}

// NewQueryParams parses query string parameter values into valid query criteria.
//
// Example:
//
//	"?page=2&limit=5&search=claim" becomes QueryParams{page: 2, recordLimit: 5, searchText: "claim"}
func NewQueryParams(values buffalo.ParamValues) QueryParams {
	q := QueryParams{recordLimit: domain.Env.DefaultPageSize, page: 1}

	q.searchText = strings.TrimSpace(values.Get("search"))

	if limit := values.Get("limit"); limit != "" {
		i, err := strconv.Atoi(strings.TrimSpace(limit))
		if err == nil {
			q.recordLimit = i
		}
	}

	if page := values.Get("page"); page != "" {
		i, err := strconv.Atoi(strings.TrimSpace(page))
		if err == nil {
			q.page = i
		}
	}

	return q
}
