package flags

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	choicePlaceholderPrefix  = "<"
	choicePlaceholderSuffix  = ">"
	choiceSeparatorLiteral   = "|"
	choiceUsageEmptyTemplate = "`%s`"
	choiceUsageFullTemplate  = "`%s` %s"
)

// FormatChoiceUsage renders a flag usage string listing choices with the default
// capitalized, e.g. "`<debug|info|WARN|error>` Log level.".
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))

	trimmedChoices := lo.Filter(lo.Map(choices, func(choice string, _ int) string {
		return strings.TrimSpace(choice)
	}), func(choice string, _ int) bool {
		return len(choice) > 0
	})
	displayChoices := lo.Map(lo.UniqBy(trimmedChoices, strings.ToLower), func(choice string, _ int) string {
		if strings.ToLower(choice) == normalizedDefault {
			return strings.ToUpper(choice)
		}
		return choice
	})

	placeholder := choicePlaceholderPrefix + strings.Join(displayChoices, choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}
