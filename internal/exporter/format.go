package exporter

import (
	"strconv"
	"strings"
)

// ListSeparator joins multi-valued cells such as index components.
const ListSeparator = ";"

// formatFloat keeps every significant digit of pass-through metrics.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatList(items []string) string {
	return strings.Join(items, ListSeparator)
}
