package alias

import (
	"errors"
	"regexp"
)

var (
	// ErrAliasEmpty is returned when an alias is empty after sanitization.
	ErrAliasEmpty = errors.New("alias cannot be empty after sanitization")
	// ErrAliasTooShort is returned when an alias has fewer than 2 characters.
	ErrAliasTooShort = errors.New("alias must have at least 2 characters")
	// ErrAliasNumericOnly is returned when an alias consists only of digits.
	ErrAliasNumericOnly = errors.New("alias cannot be only numbers")
	// ErrAliasDisallowed is returned when an alias matches a denied system name.
	ErrAliasDisallowed = errors.New("this alias pattern is not allowed")
	// ErrAliasSymbolsOnly is returned when an alias consists only of hyphens and underscores.
	ErrAliasSymbolsOnly = errors.New("alias cannot consist only of symbols")
)

var (
	numericOnlyRe = regexp.MustCompile(`^\d+$`)
	symbolsOnlyRe = regexp.MustCompile(`^[-_]+$`)
	systemNameRe  = regexp.MustCompile(`^(admin|root|api|www|mail)$`)
)

// Validate applies the acceptance rules to an already-sanitized alias.
// Callers must run Sanitize first; Validate does not sanitize on its own.
func Validate(sanitized string) error {
	if sanitized == "" {
		return ErrAliasEmpty
	}

	// Unreachable through Sanitize, which strips edge separators,
	// but defended against direct calls.
	if symbolsOnlyRe.MatchString(sanitized) {
		return ErrAliasSymbolsOnly
	}

	if len(sanitized) < 2 {
		return ErrAliasTooShort
	}

	if numericOnlyRe.MatchString(sanitized) {
		return ErrAliasNumericOnly
	}

	if systemNameRe.MatchString(sanitized) {
		return ErrAliasDisallowed
	}

	return nil
}
