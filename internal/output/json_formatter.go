package output

import (
	"encoding/json"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// JSONFormatter emits the full run result as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.RunResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
