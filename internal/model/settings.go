// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Setting keys. Company and theme values live in the same table; the
// typed SiteSettings view separates them at the boundary.
const (
	SettingCompanyName    = "company_name"
	SettingCompanyEmail   = "company_email"
	SettingCompanyPhone   = "company_phone"
	SettingCompanyAddress = "company_address"

	SettingThemePrimaryColor   = "theme_primary_color"
	SettingThemeSecondaryColor = "theme_secondary_color"
	SettingThemeAccentColor    = "theme_accent_color"
	SettingThemeFontFamily     = "theme_font_family"
	SettingThemeSpacing        = "theme_spacing"
	SettingThemeRadius         = "theme_radius"

	SettingShowHero         = "show_hero"
	SettingShowPublications = "show_publications"
)

// DefaultSettings returns the seed values for a fresh database.
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingCompanyName:         "Company Portal",
		SettingCompanyEmail:        "info@example.com",
		SettingCompanyPhone:        "",
		SettingCompanyAddress:      "",
		SettingThemePrimaryColor:   "#1f2937",
		SettingThemeSecondaryColor: "#3b82f6",
		SettingThemeAccentColor:    "#f59e0b",
		SettingThemeFontFamily:     "Inter",
		SettingThemeSpacing:        "16",
		SettingThemeRadius:         "8",
		SettingShowHero:            "true",
		SettingShowPublications:    "true",
	}
}

// SiteSettings is the typed view of the settings table. Values are
// parsed and validated once when rows are read, instead of every
// consumer re-parsing strings.
type SiteSettings struct {
	CompanyName    string `json:"company_name"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
	CompanyAddress string `json:"company_address"`

	Theme ThemeSettings `json:"theme"`

	ShowHero         bool `json:"show_hero"`
	ShowPublications bool `json:"show_publications"`
}

// ThemeSettings holds the visual theme values applied as CSS variables.
type ThemeSettings struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color"`
	FontFamily     string `json:"font_family"`
	Spacing        int    `json:"spacing"`
	Radius         int    `json:"radius"`
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ErrInvalidSetting marks a setting value that failed validation.
var ErrInvalidSetting = errors.New("invalid setting value")

// IsSettingValidationError reports whether err came from setting
// value validation.
func IsSettingValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSetting)
}

// ValidateSettingValue checks a single key/value pair before it is
// written. Unknown keys are accepted as free-form strings.
func ValidateSettingValue(key, value string) error {
	switch key {
	case SettingThemePrimaryColor, SettingThemeSecondaryColor, SettingThemeAccentColor:
		if !hexColorRe.MatchString(value) {
			return fmt.Errorf("%w: %s must be a hex color like #1f2937, got %q", ErrInvalidSetting, key, value)
		}
	case SettingThemeSpacing, SettingThemeRadius:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 128 {
			return fmt.Errorf("%w: %s must be an integer between 0 and 128, got %q", ErrInvalidSetting, key, value)
		}
	case SettingShowHero, SettingShowPublications:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidSetting, key, value)
		}
	}
	return nil
}

// ParseSettings builds the typed view from raw key/value rows, filling
// defaults for missing keys. Invalid stored values fall back to their
// defaults rather than failing the read.
func ParseSettings(raw map[string]string) SiteSettings {
	defaults := DefaultSettings()
	get := func(key string) string {
		if v, ok := raw[key]; ok && v != "" {
			return v
		}
		return defaults[key]
	}
	getColor := func(key string) string {
		v := get(key)
		if !hexColorRe.MatchString(v) {
			return defaults[key]
		}
		return v
	}
	getInt := func(key string) int {
		n, err := strconv.Atoi(get(key))
		if err != nil || n < 0 || n > 128 {
			n, _ = strconv.Atoi(defaults[key])
		}
		return n
	}
	getBool := func(key string) bool {
		b, err := strconv.ParseBool(get(key))
		if err != nil {
			b, _ = strconv.ParseBool(defaults[key])
		}
		return b
	}

	return SiteSettings{
		CompanyName:    get(SettingCompanyName),
		CompanyEmail:   get(SettingCompanyEmail),
		CompanyPhone:   get(SettingCompanyPhone),
		CompanyAddress: get(SettingCompanyAddress),
		Theme: ThemeSettings{
			PrimaryColor:   getColor(SettingThemePrimaryColor),
			SecondaryColor: getColor(SettingThemeSecondaryColor),
			AccentColor:    getColor(SettingThemeAccentColor),
			FontFamily:     get(SettingThemeFontFamily),
			Spacing:        getInt(SettingThemeSpacing),
			Radius:         getInt(SettingThemeRadius),
		},
		ShowHero:         getBool(SettingShowHero),
		ShowPublications: getBool(SettingShowPublications),
	}
}
