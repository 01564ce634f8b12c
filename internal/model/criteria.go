package model

import (
	"strconv"
	"strings"
)

// Criteria is the raw filter input for the catalog.
// Empty fields are inactive.
type Criteria struct {
	Name      string
	Type      string
	MinWeight string
}

// MinWeightValue parses MinWeight.
// The second return value is false when the field is empty or unparsable,
// in which case the weight criterion is treated as unset.
func (c Criteria) MinWeightValue() (float64, bool) {
	raw := strings.TrimSpace(c.MinWeight)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
