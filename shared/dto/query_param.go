package dto

import (
	"medimate/shared/constant"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,gte=1"`
	Limit   int    `json:"limit"    validate:"omitempty,gte=1,lte=100"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads pagination and sorting from the query string.
// With defaultRequest set, missing page and limit fall back to the package defaults.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	values := r.URL.Query()

	if page, err := strconv.Atoi(values.Get(constant.RequestParamPage)); err == nil && page > 0 {
		q.Page = page
	}

	if limit, err := strconv.Atoi(values.Get(constant.RequestParamLimit)); err == nil && limit > 0 {
		q.Limit = limit
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// RestrictSort drops a sort column that is not in the allowed list, so it never reaches ORDER BY.
// An empty sort falls back to the first allowed column, descending.
func (q *QueryParams) RestrictSort(allowed ...string) {
	if len(allowed) == 0 {
		q.SortBy, q.SortDir = "", ""

		return
	}

	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = allowed[0]
	}

	if q.SortDir == "" {
		q.SortDir = SortDirDesc
	}
}

// CacheSuffix renders the params as a stable cache key fragment.
func (q QueryParams) CacheSuffix() string {
	return "page=" + strconv.Itoa(q.Page) + ":limit=" + strconv.Itoa(q.Limit) + ":sort=" + q.SortBy + "_" + q.SortDir
}
