package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{"pl": LanguagePL, " PL ": LanguagePL, "ru": LanguageRU, "RU": LanguageRU} {
		got, err := ParseLanguage(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLanguage("en")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestLanguageEnglishName(t *testing.T) {
	assert.Equal(t, "Polish", LanguagePL.EnglishName())
	assert.Equal(t, "Russian", LanguageRU.EnglishName())
}
