package domain

import (
	"fmt"
	"strings"
)

// Language is the response language of the assistant.
type Language string

const (
	LanguagePL Language = "PL"
	LanguageRU Language = "RU"
)

// Languages lists the supported languages in display order.
var Languages = []Language{LanguagePL, LanguageRU}

// ParseLanguage accepts "pl", "PL", "ru", "RU" and surrounding whitespace.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToUpper(strings.TrimSpace(s))) {
	case LanguagePL:
		return LanguagePL, nil
	case LanguageRU:
		return LanguageRU, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// EnglishName is the language name used inside the system instruction.
func (l Language) EnglishName() string {
	if l == LanguageRU {
		return "Russian"
	}
	return "Polish"
}

func (l Language) String() string {
	return string(l)
}
