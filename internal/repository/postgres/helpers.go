package postgres

import "fmt"

func itoa(i int) string { return fmt.Sprint(i) }

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
