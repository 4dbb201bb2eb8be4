package utils

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// ParsePagination reads ?page= and ?limit= into skip/limit values for
// offset-style listings. Limit is clamped to maxLimit.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}

// ParseSort maps a "field" or "-field" sort parameter onto a bson sort
// document, falling back to def when the field is not in allowed.
func ParseSort(param string, def bson.D, allowed map[string]string) bson.D {
	if param == "" {
		return def
	}

	dir := 1
	if param[0] == '-' {
		dir = -1
		param = param[1:]
	}

	field, ok := allowed[param]
	if !ok {
		return def
	}
	return bson.D{{Key: field, Value: dir}}
}
