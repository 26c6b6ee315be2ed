package http

import (
	"net/http"
	"strconv"

	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDate parses an optional YYYY-MM-DD query parameter. A missing
// parameter yields nil; a malformed one yields INVALID_INPUT.
func ExtractDate(r *http.Request, param string) (*model.Date, error) {
	s := r.URL.Query().Get(param)
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + param + " parameter, expected YYYY-MM-DD: " + s)
	}
	return &d, nil
}
