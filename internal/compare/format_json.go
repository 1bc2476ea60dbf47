package compare

import (
	"fmt"

	"github.com/goccy/go-json"
)

// JSONFormatter serializes a comparison set for machine consumers. The
// output unmarshals back into ComparisonSet without loss.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format renders the comparison set as JSON
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v interface{}) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	data, err := marshal(compSet)
	if err != nil {
		return "", fmt.Errorf("failed to encode comparison: %w", err)
	}
	return string(data), nil
}
