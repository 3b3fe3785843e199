package models

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned for tags outside the supported locale set.
var ErrInvalidLocale = errors.New("unsupported locale")

// ParseLocale canonicalizes s ("pt_br", "PT-BR", "en") into a supported Locale.
func ParseLocale(s string) (Locale, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocale, s)
	}
	switch tag.String() {
	case string(LocaleEN):
		return LocaleEN, nil
	case string(LocalePTBR):
		return LocalePTBR, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLocale, s)
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	return l == LocaleEN || l == LocalePTBR
}
