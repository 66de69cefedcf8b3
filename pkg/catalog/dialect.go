package catalog

import (
	"strconv"
	"strings"
)

// rebind rewrites '?' placeholders into the driver's bind syntax.
// MySQL and DuckDB take '?' as is; lib/pq needs $1, $2, ...
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
