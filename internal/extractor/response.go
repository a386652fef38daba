package extractor

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"marksight/internal/domain"
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseRecord turns raw model text into a MarksheetRecord. Model output is
// untrusted: it may wrap the JSON in code fences or prose, omit fields, or
// return numbers where strings are expected. Parse failures never surface as
// errors; they produce an error record carrying the raw text so the caller
// can still persist and export the attempt.
func ParseRecord(raw string) domain.MarksheetRecord {
	candidate, ok := extractJSONCandidate(raw)
	if !ok {
		return domain.ErrorMarksheetRecord("no JSON object found in model response", raw)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return domain.ErrorMarksheetRecord("invalid JSON in model response: "+err.Error(), raw)
	}

	rec := recordFromObject(obj)
	rec.RawResponse = raw
	return rec
}

// extractJSONCandidate locates the JSON payload inside raw model text.
// A fenced ```json block wins; otherwise the span from the first '{' to the
// last '}' is taken.
func extractJSONCandidate(raw string) (string, bool) {
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		inner := strings.TrimSpace(m[1])
		if inner != "" {
			return inner, true
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

func recordFromObject(obj map[string]any) domain.MarksheetRecord {
	rec := domain.NewMarksheetRecord()

	rec.RollNumber = stringField(obj, "rrn", rec.RollNumber)
	rec.StudentName = stringField(obj, "student_name", rec.StudentName)
	rec.ClassLabel = stringField(obj, "class", rec.ClassLabel)
	rec.School = stringField(obj, "school", rec.School)
	rec.AcademicYear = stringField(obj, "academic_year", rec.AcademicYear)
	rec.TotalObtained = stringField(obj, "total_marks", rec.TotalObtained)
	rec.TotalMax = stringField(obj, "total_max_marks", rec.TotalMax)
	rec.Percentage = stringField(obj, "percentage", rec.Percentage)
	rec.Grade = stringField(obj, "grade", rec.Grade)
	rec.AdditionalInfo = stringField(obj, "additional_info", "")
	rec.Sections = sectionsField(obj, "sectionwise_marks")

	return rec
}

// stringField reads obj[key] coerced to a string. Missing keys, nulls, and
// empty strings fall back to def. Numeric and boolean values are formatted
// rather than rejected.
func stringField(obj map[string]any, key, def string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return def
		}
		return s
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return def
	}
}

func sectionsField(obj map[string]any, key string) []domain.SectionMark {
	sections := []domain.SectionMark{}
	arr, ok := obj[key].([]any)
	if !ok {
		return sections
	}
	for _, item := range arr {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sections = append(sections, domain.SectionMark{
			Subject:       stringField(entry, "subject", ""),
			MarksObtained: stringField(entry, "marks_obtained", ""),
			MaxMarks:      stringField(entry, "max_marks", ""),
		})
	}
	return sections
}
