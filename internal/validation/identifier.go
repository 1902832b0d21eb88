package validation

import (
	"regexp"

	validation "github.com/jellydator/validation"
)

// identifierRegex restricts ids to characters that are safe inside store keys and URL paths.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._@+\-]*$`)

// Identifier validates customer and business ids.
var Identifier = validation.NewStringRuleWithError(
	func(s string) bool {
		return identifierRegex.MatchString(s)
	},
	validation.NewError(
		"validation_identifier",
		"must start with a letter or digit and contain only letters, digits, '.', '_', '@', '+' or '-'",
	),
)
