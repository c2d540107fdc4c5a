// internal/extract/extractor.go
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/metrics"
)

// Schema describes what a model reply must parse into. Definition is a
// JSON Schema document. ExpectedCount > 0 requires the payload to be a
// JSON array of exactly that many items.
type Schema struct {
	Name          string
	Definition    map[string]interface{}
	ExpectedCount int
}

const snippetLimit = 200

// fencePattern matches a payload wrapped in exactly one leading and one
// trailing fenced-code marker pair, capturing the inner content. Inner
// fences stay untouched.
var fencePattern = regexp.MustCompile("(?s)^\\s*```[a-zA-Z0-9]*[ \t]*\r?\n?(.*?)\r?\n?[ \t]*```\\s*$")

// Strip removes at most one outer fence pair plus surrounding whitespace.
// A payload with no fences comes back unchanged apart from trimming, so
// stripping already-clean JSON is a no-op.
func Strip(raw string) string {
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// Parse converts untrusted model text into the typed value v. This is the
// single trust boundary between free-text provider output and domain
// data: on any failure the raw snippet (truncated) travels with the
// error, and nothing of the unvalidated text ever reaches v.
func Parse(raw string, schema Schema, v interface{}) *commonerrors.StandardError {
	clean := Strip(raw)

	var payload interface{}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		metrics.ExtractionFailures.WithLabelValues(schema.Name, "invalid_json").Inc()
		return commonerrors.NewExtractionFailedError(truncate(raw), "invalid JSON: "+err.Error())
	}

	if schema.ExpectedCount > 0 {
		items, ok := payload.([]interface{})
		if !ok {
			metrics.ExtractionFailures.WithLabelValues(schema.Name, "not_a_list").Inc()
			return commonerrors.NewExtractionFailedError(truncate(raw), "expected a JSON array")
		}
		if len(items) != schema.ExpectedCount {
			metrics.ExtractionFailures.WithLabelValues(schema.Name, "count_mismatch").Inc()
			return commonerrors.NewCountMismatchError(schema.ExpectedCount, len(items))
		}
	}

	if schema.Definition != nil {
		schemaLoader := gojsonschema.NewGoLoader(schema.Definition)
		documentLoader := gojsonschema.NewGoLoader(payload)

		result, err := gojsonschema.Validate(schemaLoader, documentLoader)
		if err != nil {
			metrics.ExtractionFailures.WithLabelValues(schema.Name, "schema_error").Inc()
			return commonerrors.NewExtractionFailedError(truncate(raw), "schema validation error: "+err.Error())
		}

		if !result.Valid() {
			violations := make([]string, len(result.Errors()))
			for i, desc := range result.Errors() {
				violations[i] = desc.String()
			}
			metrics.ExtractionFailures.WithLabelValues(schema.Name, "schema_violation").Inc()
			return commonerrors.NewSchemaViolationError(violations)
		}
	}

	// Unknown extra fields are dropped here, not errored.
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		metrics.ExtractionFailures.WithLabelValues(schema.Name, "decode").Inc()
		return commonerrors.NewExtractionFailedError(truncate(raw), "decode: "+err.Error())
	}

	return nil
}

func truncate(raw string) string {
	if len(raw) <= snippetLimit {
		return raw
	}
	return raw[:snippetLimit] + "..."
}
