package utils

import "math"

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// maxOffset bounds the row offset so that huge page numbers select an empty
// page instead of overflowing.
const maxOffset = math.MaxInt32

func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 >= maxOffset/perPage {
		return maxOffset
	}
	return (page - 1) * perPage
}
