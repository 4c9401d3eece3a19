package service

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// cellPolicy strips all markup from server-supplied table cells.
	cellPolicy     *bluemonday.Policy
	cellPolicyOnce sync.Once
)

func getCellPolicy() *bluemonday.Policy {
	cellPolicyOnce.Do(func() {
		cellPolicy = bluemonday.StrictPolicy()
	})
	return cellPolicy
}

// cellText renders a decoded JSON value as plain display text.
func cellText(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		s = fmt.Sprint(t)
	}
	if s == "" {
		return ""
	}
	return getCellPolicy().Sanitize(s)
}
