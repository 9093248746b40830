package worker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	return nil
}

// normalizeNamePart lowercases a name and strips everything that is not
// a letter or digit, so "O'Brien" becomes "obrien".
func normalizeNamePart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// baseUsername derives the "first.last" stem a new worker's username
// starts from.
func baseUsername(first, last string) string {
	base := normalizeNamePart(first) + "." + normalizeNamePart(last)
	if base == "." {
		return "worker"
	}
	return strings.Trim(base, ".")
}

// EmployeeNumber renders a company-scoped employee number, e.g. "TRAT-0001".
func EmployeeNumber(companyCode string, seq int64) string {
	return fmt.Sprintf("%s-%04d", companyCode, seq)
}

// uniqueUsername appends a counter to the stem until the username is free.
func (s *DefaultWorkerService) uniqueUsername(first, last string) (string, error) {
	base := baseUsername(first, last)
	candidate := base
	for i := 2; ; i++ {
		existing, err := s.Repo.GetByUsername(candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}
