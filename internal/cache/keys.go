// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

// Resource-type key prefixes. Invalidation always targets a whole
// prefix, so a write to one resource never evicts another's entries.
const (
	PrefixContent      = "content:"
	PrefixImages       = "images:"
	PrefixSettings     = "settings:"
	PrefixPublications = "publications:"
)

// ContentKey returns the cache key for a section's content list.
// An empty section keys the full list.
func ContentKey(section string) string {
	return PrefixContent + section
}

// MergedContentKey returns the cache key for a section's merged
// static+dynamic list.
func MergedContentKey(section string) string {
	return PrefixContent + "merged:" + section
}

// ImagesKey returns the cache key for an image list filter.
func ImagesKey(section, subsection string) string {
	return PrefixImages + section + ":" + subsection
}

// SettingsKey returns the cache key for the flattened settings object.
func SettingsKey() string {
	return PrefixSettings + "all"
}

// PublicationsKey returns the cache key for the public publications list.
func PublicationsKey() string {
	return PrefixPublications + "active"
}
