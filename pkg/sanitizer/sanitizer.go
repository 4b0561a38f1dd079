package sanitizer

import (
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

func SanitizeName(input string) string {
	return Pipeline{TrimAndNormalize}.Apply(input)
}

func SanitizeText(input string) string {
	return Pipeline{trimLines}.Apply(input)
}

func SanitizeEmail(input string) string {
	return Pipeline{trim}.Apply(input)
}

// EmailKey is the case-insensitive identity of an email address.
func EmailKey(input string) string {
	return Pipeline{trim, lower}.Apply(input)
}

func SanitizeSearchText(input string) string {
	return Pipeline{TrimAndNormalize, lower}.Apply(input)
}

// SanitizeOptional applies strategy to *s when it is set.
func SanitizeOptional(s *string, strategy Strategy) *string {
	if s == nil {
		return nil
	}
	v := strategy(*s)
	return &v
}
