// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// LangCodeLen is the length of the language codes in use (e.g. "de_de").
const LangCodeLen = 5

// Supported language codes for archive content.
const (
	LangGerman  = "de_de"
	LangEnglish = "en_US"
)

// DefaultLocale is the preferred display language used when none is configured.
const DefaultLocale = LangGerman

// Language describes one content language supported by the archive.
type Language struct {
	Code       string `json:"code"`        // de_de, en_US
	Name       string `json:"name"`        // German, English
	NativeName string `json:"native_name"` // Deutsch, English
}

// SupportedLanguages lists the languages archive content may be stored in.
// The set is fixed; adding a language requires a code change.
var SupportedLanguages = []Language{
	{Code: LangGerman, Name: "German", NativeName: "Deutsch"},
	{Code: LangEnglish, Name: "English", NativeName: "English"},
}

// IsSupportedLanguage reports whether code is in the supported language set.
func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}
