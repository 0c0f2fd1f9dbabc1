package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

const dateOnly = "2006-01-02"

// Pagination reads limit together with either offset or a 1-based page
func Pagination(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()

	if limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = intParam(q.Get("offset"), "offset"); err != nil {
		return 0, 0, err
	}
	page, err := intParam(q.Get("page"), "page")
	if err != nil {
		return 0, 0, err
	}
	if limit < 0 || offset < 0 || page < 0 {
		return 0, 0, apperror.InvalidArgument("Pagination parameters must not be negative")
	}
	if page > 0 && offset == 0 {
		pageSize := limit
		if pageSize == 0 {
			pageSize = 10
		}
		offset = (page - 1) * pageSize
	}
	return limit, offset, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.InvalidArgument("%s must be an integer", name)
	}
	return n, nil
}

// ParseTime accepts RFC3339 timestamps and YYYY-MM-DD dates. A date-only
// value is the start of that UTC day, or its last instant when endOfDay is set.
func ParseTime(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return nil, apperror.InvalidArgument("Invalid date %q: use YYYY-MM-DD or RFC3339", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// DateRange reads start_date and end_date from the query string
func DateRange(r *http.Request) (start, end *time.Time, err error) {
	q := r.URL.Query()
	if start, err = ParseTime(q.Get("start_date"), false); err != nil {
		return nil, nil, err
	}
	if end, err = ParseTime(q.Get("end_date"), true); err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, apperror.InvalidArgument("end_date must not be before start_date")
	}
	return start, end, nil
}

// BoolParam reads a boolean query parameter, treating anything unparsable as false
func BoolParam(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}
