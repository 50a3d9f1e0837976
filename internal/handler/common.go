package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in the identity helpers
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types
)

// getWorkerID extracts the worker_id placed in context by the session
// middleware and converts it to uint64.
func getWorkerID(c echo.Context) (uint64, error) {
    return getID(c, "worker_id")
}

// getAdminID extracts the admin_id placed in context by the session
// middleware.
func getAdminID(c echo.Context) (uint64, error) {
    return getID(c, "admin_id")
}

func getID(c echo.Context, key string) (uint64, error) {
    v := c.Get(key)
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid " + key + " in context")
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

// pagination is the envelope the listing endpoints share.
type pagination struct {
    Total      int64 `json:"total"`
    Page       int   `json:"page"`
    Limit      int   `json:"limit"`
    TotalPages int64 `json:"total_pages"`
}

func paginate(total int64, page, limit int) pagination {
    pages := total / int64(limit)
    if total%int64(limit) != 0 {
        pages++
    }
    return pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}
