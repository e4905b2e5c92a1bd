package utils

import (
	"fmt"
	"strconv"
)

// ParseIDList converts a list of string ids into uints
func ParseIDList(values []string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		id, err := StringToUint(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// StringToUint converts a string to uint
func StringToUint(s string) (uint, error) {
	val, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid uint value: %w", err)
	}
	return uint(val), nil
}
