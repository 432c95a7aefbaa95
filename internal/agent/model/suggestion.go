package model

type SuggestionCategory string

const (
	CategoryInitial     SuggestionCategory = "initial"
	CategoryCompanyInfo SuggestionCategory = "company_info"
	CategoryServices    SuggestionCategory = "services"
	CategoryProjects    SuggestionCategory = "projects"
	CategoryContact     SuggestionCategory = "contact"
	CategoryTechnical   SuggestionCategory = "technical"
	CategoryProcess     SuggestionCategory = "process"
	CategoryPricing     SuggestionCategory = "pricing"
	CategoryTimeline    SuggestionCategory = "timeline"
)
