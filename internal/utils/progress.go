package utils

import (
	"math"
	"strconv"
)

// Percentage returns part/total as percentage rounded to one decimal,
// formatted like "30.0", halves rounded to even. A zero total yields "0".
func Percentage(part, total int64) string {
	if total == 0 {
		return "0"
	}
	value := math.RoundToEven(float64(part)/float64(total)*100*10) / 10
	return strconv.FormatFloat(value, 'f', 1, 64)
}
