package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteSummary renders the summary to w in the requested format ("json" or
// "yaml").
func WriteSummary(w io.Writer, s Summary, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("batch: failed to encode JSON summary: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("batch: failed to encode YAML summary: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("batch: unknown summary format %q", format)
	}
}
