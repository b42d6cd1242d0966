package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// percent renders a [0,1] score with one decimal, e.g. 0.6 -> "60.0%".
func percent(x float64) string {
	return fmt.Sprintf("%.1f%%", x*100)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
