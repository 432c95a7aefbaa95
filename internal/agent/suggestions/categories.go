package suggestions

import (
	"regexp"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
)

// Phrases holds the static candidates per category.
var Phrases = map[model.SuggestionCategory][]string{
	model.CategoryInitial: {
		"What services do you offer?",
		"Tell me about your company",
		"Can I see examples of your work?",
		"How can I contact you?",
		"What's new with your company?",
	},
	model.CategoryCompanyInfo: {
		"Who is on your team?",
		"How long have you been in business?",
		"What makes your company different?",
		"What are your company values?",
		"Where are you located?",
	},
	model.CategoryServices: {
		"Which service is right for my business?",
		"Do you offer ongoing support?",
		"Can you customize a package for me?",
		"What industries do you work with?",
		"Do you offer website maintenance?",
	},
	model.CategoryProjects: {
		"Can I see your recent projects?",
		"Do you have case studies?",
		"What was your most challenging project?",
		"Have you worked with companies like mine?",
	},
	model.CategoryContact: {
		"What is the best way to reach you?",
		"Can I schedule a call?",
		"What are your business hours?",
		"How quickly do you respond to inquiries?",
	},
	model.CategoryTechnical: {
		"What technologies do you use?",
		"Do you handle hosting and security?",
		"Can you integrate with my existing systems?",
		"Will my site be mobile friendly?",
	},
	model.CategoryProcess: {
		"What does your process look like?",
		"How do we get started?",
		"How involved will I be during the project?",
		"How do you handle revisions?",
	},
	model.CategoryPricing: {
		"Can I get a quote?",
		"Do you offer payment plans?",
		"What is included in the price?",
		"Are there any ongoing costs?",
	},
	model.CategoryTimeline: {
		"How long does a typical project take?",
		"Can you work with a tight deadline?",
		"When could you start on my project?",
		"What affects the project timeline?",
	},
}

// classifyOrder doubles as the tie-break priority.
var classifyOrder = []model.SuggestionCategory{
	model.CategoryContact,
	model.CategoryPricing,
	model.CategoryTimeline,
	model.CategoryServices,
	model.CategoryProjects,
	model.CategoryTechnical,
	model.CategoryProcess,
	model.CategoryCompanyInfo,
}

var categoryKeywords = map[model.SuggestionCategory][]string{
	model.CategoryContact:     {"contact", "email", "phone", "call", "reach", "get in touch", "talk to", "meeting"},
	model.CategoryPricing:     {"price", "pricing", "cost", "budget", "quote", "fee", "afford", "payment", "expensive", "cheap"},
	model.CategoryTimeline:    {"timeline", "how long", "deadline", "when", "weeks", "months", "schedule", "duration", "turnaround"},
	model.CategoryServices:    {"service", "offer", "provide", "build", "develop", "design", "solution", "help with"},
	model.CategoryProjects:    {"project", "portfolio", "case study", "example", "previous work", "clients", "showcase"},
	model.CategoryTechnical:   {"technology", "tech stack", "framework", "integration", "api", "hosting", "security", "platform", "wordpress", "seo"},
	model.CategoryProcess:     {"process", "steps", "how do you work", "workflow", "methodology", "approach", "onboarding", "get started"},
	model.CategoryCompanyInfo: {"company", "about", "team", "who", "history", "mission", "founded", "values", "experience"},
}

type keyword struct {
	text    string
	bounded *regexp.Regexp
}

var compiledKeywords = compileKeywords()

func compileKeywords() map[model.SuggestionCategory][]keyword {
	out := make(map[model.SuggestionCategory][]keyword, len(categoryKeywords))
	for cat, words := range categoryKeywords {
		for _, w := range words {
			out[cat] = append(out[cat], keyword{text: w, bounded: regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)})
		}
	}
	return out
}
