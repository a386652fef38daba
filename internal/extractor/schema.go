package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema describes the JSON shape the prompt asks for. It is advisory:
// a response that fails it is still parsed leniently, but the mismatch is
// reported so callers can flag low-confidence extractions.
const recordSchema = `{
  "type": "object",
  "properties": {
    "rrn": {"type": ["string", "number", "null"]},
    "student_name": {"type": ["string", "null"]},
    "class": {"type": ["string", "number", "null"]},
    "school": {"type": ["string", "null"]},
    "academic_year": {"type": ["string", "number", "null"]},
    "sectionwise_marks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "subject": {"type": ["string", "null"]},
          "marks_obtained": {"type": ["string", "number", "null"]},
          "max_marks": {"type": ["string", "number", "null"]}
        }
      }
    },
    "total_marks": {"type": ["string", "number", "null"]},
    "total_max_marks": {"type": ["string", "number", "null"]},
    "percentage": {"type": ["string", "number", "null"]},
    "grade": {"type": ["string", "null"]},
    "additional_info": {"type": ["string", "null"]}
  },
  "required": ["rrn", "student_name"]
}`

var compiledRecordSchema = jsonschema.MustCompileString("record.json", recordSchema)

// ValidateShape checks raw model text against the expected response schema.
// It returns nil when the payload conforms, and a descriptive error otherwise.
func ValidateShape(raw string) error {
	candidate, ok := extractJSONCandidate(raw)
	if !ok {
		return fmt.Errorf("no JSON object found in model response")
	}

	var doc any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return fmt.Errorf("model response is not valid JSON: %w", err)
	}

	if err := compiledRecordSchema.Validate(doc); err != nil {
		// The validator's multi-line output is noisy in logs; keep the first line.
		msg := err.Error()
		if i := strings.IndexByte(msg, '\n'); i > 0 {
			msg = msg[:i]
		}
		return fmt.Errorf("model response does not match expected shape: %s", msg)
	}
	return nil
}
