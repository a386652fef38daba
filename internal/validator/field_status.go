package validator

import (
	"marksight/internal/domain"
)

// FieldStatus represents the computed validation state for a single field path.
type FieldStatus struct {
	Status   domain.FieldValidationStatus `json:"status"`
	Messages []string                     `json:"messages"`
}

// ComputeFieldStatuses derives per-field validation statuses from rule results.
// A field failing any error-severity rule is invalid; failing only warnings
// makes it unsure; otherwise it is valid.
func ComputeFieldStatuses(entries []ResultEntry) map[string]*FieldStatus {
	statuses := make(map[string]*FieldStatus)

	for _, entry := range entries {
		fs := statuses[entry.FieldPath]
		if fs == nil {
			fs = &FieldStatus{Status: domain.FieldStatusValid, Messages: []string{}}
			statuses[entry.FieldPath] = fs
		}
		if entry.Passed {
			continue
		}
		if entry.Severity == domain.ValidationSeverityError {
			fs.Status = domain.FieldStatusInvalid
		} else if fs.Status != domain.FieldStatusInvalid {
			fs.Status = domain.FieldStatusUnsure
		}
		fs.Messages = append(fs.Messages, entry.Message)
	}

	return statuses
}
