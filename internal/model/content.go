// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Content sections. Sections key both content blocks and images.
const (
	SectionAbout        = "about"
	SectionServices     = "services"
	SectionProducts     = "products"
	SectionPolicies     = "policies"
	SectionPublications = "publications"
	SectionContact      = "contact"
	SectionHero         = "hero"
	SectionLogo         = "logo"
)

// Sections returns the known section identifiers.
func Sections() []string {
	return []string{
		SectionAbout,
		SectionServices,
		SectionProducts,
		SectionPolicies,
		SectionPublications,
		SectionContact,
		SectionHero,
		SectionLogo,
	}
}

// IsValidSection checks whether a section identifier is known.
func IsValidSection(section string) bool {
	for _, s := range Sections() {
		if s == section {
			return true
		}
	}
	return false
}

// StaticContent is a hardcoded fallback content block. Fallbacks exist
// only in code, never in the store: a subsection "exists" for readers if
// either a database row or a fallback is defined.
type StaticContent struct {
	Section    string
	Subsection string
	Title      string
	Content    string
	ImageURL   string
}

// staticDefaults holds the fallback copy shown until an administrator
// saves a database row for the same (section, subsection).
var staticDefaults = []StaticContent{
	{
		Section:    SectionAbout,
		Subsection: "our-history",
		Title:      "Our History",
		Content:    "Founded to deliver dependable engineering services, the company has grown alongside its clients for over a decade.",
	},
	{
		Section:    SectionAbout,
		Subsection: "mission-vision",
		Title:      "Mission & Vision",
		Content:    "Our mission is to provide quality services that exceed expectations. Our vision is to be the partner of choice in every market we serve.",
	},
	{
		Section:    SectionAbout,
		Subsection: "our-team",
		Title:      "Our Team",
		Content:    "A multidisciplinary team of engineers, designers and project managers.",
	},
	{
		Section:    SectionServices,
		Subsection: "consulting",
		Title:      "Consulting",
		Content:    "Advisory services across the full project lifecycle.",
	},
	{
		Section:    SectionServices,
		Subsection: "maintenance",
		Title:      "Maintenance & Support",
		Content:    "Preventive and corrective maintenance with guaranteed response times.",
	},
	{
		Section:    SectionProducts,
		Subsection: "catalog",
		Title:      "Product Catalog",
		Content:    "Browse our range of products and solutions.",
	},
	{
		Section:    SectionPolicies,
		Subsection: "quality-policy",
		Title:      "Quality Policy",
		Content:    "We are committed to continuous improvement and customer satisfaction.",
	},
	{
		Section:    SectionPolicies,
		Subsection: "privacy-policy",
		Title:      "Privacy Policy",
		Content:    "How we collect, use and protect personal information.",
	},
}

// StaticDefaults returns the fallback content blocks for a section,
// in their declared order. Returns all sections when section is empty.
func StaticDefaults(section string) []StaticContent {
	if section == "" {
		out := make([]StaticContent, len(staticDefaults))
		copy(out, staticDefaults)
		return out
	}
	var out []StaticContent
	for _, sc := range staticDefaults {
		if sc.Section == section {
			out = append(out, sc)
		}
	}
	return out
}
