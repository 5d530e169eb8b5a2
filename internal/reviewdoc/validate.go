package reviewdoc

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/danielolaszy/issuer/pkg/models"
)

// Validate reports problems that make an issue record ill-formed. Callers
// treat the result as a warning; records are never rejected.
func Validate(issue models.ReviewIssue) error {
	return validation.ValidateStruct(&issue,
		validation.Field(&issue.Number, validation.Required, validation.Min(1)),
		validation.Field(&issue.ShortTitle, validation.Required),
		validation.Field(&issue.Title, validation.Required),
		validation.Field(&issue.Labels, validation.Each(validation.Required), validation.By(uniqueLabels)),
	)
}

func uniqueLabels(value interface{}) error {
	labels, _ := value.([]string)
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if seen[label] {
			return validation.NewError("validation_label_duplicate", fmt.Sprintf("duplicate label %q", label))
		}
		seen[label] = true
	}
	return nil
}
