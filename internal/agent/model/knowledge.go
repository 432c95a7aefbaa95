package model

import "sort"

// Fixed knowledge sections. Additional sections are allowed.
const (
	SectionCompanyInfo       = "company_info"
	SectionWebsiteNavigation = "website_navigation"
	SectionRecentNews        = "recent_news"
	SectionFAQ               = "faq"
	SectionContactInfo       = "contact_info"
)

// FixedSections lists the sections every KnowledgeBase carries, in display order.
var FixedSections = []string{
	SectionCompanyInfo,
	SectionWebsiteNavigation,
	SectionRecentNews,
	SectionFAQ,
}

// KnowledgeBase maps a section name to free-text (possibly HTML) content.
type KnowledgeBase map[string]string

// DefaultKnowledgeBase returns a knowledge base with every fixed section present and empty.
func DefaultKnowledgeBase() KnowledgeBase {
	kb := make(KnowledgeBase, len(FixedSections))
	for _, s := range FixedSections {
		kb[s] = ""
	}
	return kb
}

// Normalize fills in missing fixed sections.
func (kb KnowledgeBase) Normalize() KnowledgeBase {
	out := DefaultKnowledgeBase()
	for k, v := range kb {
		out[k] = v
	}
	return out
}

// Section returns the content of name, or "" when absent.
func (kb KnowledgeBase) Section(name string) string {
	if kb == nil {
		return ""
	}
	return kb[name]
}

// Names returns fixed sections first, then any extra sections in sorted order.
func (kb KnowledgeBase) Names() []string {
	names := append([]string(nil), FixedSections...)
	extra := make([]string, 0)
	for k := range kb {
		if !isFixed(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func isFixed(name string) bool {
	for _, s := range FixedSections {
		if s == name {
			return true
		}
	}
	return false
}
