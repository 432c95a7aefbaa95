package fallback

import "github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"

type topic struct {
	name     string
	keywords []string
	// section is the knowledge section answered from; empty for canned replies.
	section  string
	reply    string
	notReady string
}

var companyKeywords = []string{
	"company", "about", "who are you", "who is", "what is", "business", "organization",
	"firm", "enterprise", "startup", "agency", "what do you do", "what does your company do",
	"services", "solutions", "mission", "vision", "values", "team", "founder", "ceo",
	"leadership", "project", "projects", "clients", "partners", "background", "overview",
	"profile", "identity", "history", "established", "foundation", "introduction",
}

var navigationKeywords = []string{
	"find", "where", "how do i", "page", "navigate", "go to", "location", "menu", "click",
	"site map", "link", "section", "open", "access", "visit", "how to access",
	"how can i find", "get to", "homepage", "contact page", "services page", "products page",
	"support page", "footer", "header", "scroll",
}

var newsKeywords = []string{
	"news", "update", "recent", "latest", "announcement", "blog", "article", "press",
	"press release", "headline", "stories", "events", "happening", "what's new", "what is new",
	"what's happening", "updates", "insights", "newsletter", "trending", "launch", "release",
	"today", "yesterday", "timeline", "media", "coverage", "post", "published", "report",
}

var faqKeywords = []string{
	"faq", "question", "how much", "price", "cost", "policy", "refund", "warranty",
	"support", "help with", "hours", "payment",
}

var contactKeywords = []string{"contact", "email", "phone", "call", "reach"}

// knowledgeTopics are evaluated before the canned replies, in this order.
var knowledgeTopics = []topic{
	{
		name:     "company",
		keywords: companyKeywords,
		section:  model.SectionCompanyInfo,
		notReady: "I'd be happy to tell you about our company, but it looks like that information hasn't been set up yet.",
	},
	{
		name:     "navigation",
		keywords: navigationKeywords,
		section:  model.SectionWebsiteNavigation,
		notReady: "I can help you navigate our website, but it seems that navigation information hasn't been set up yet.",
	},
	{
		name:     "news",
		keywords: newsKeywords,
		section:  model.SectionRecentNews,
		notReady: "I'd be happy to share our latest news, but it looks like that information hasn't been updated yet.",
	},
	{
		name:     "faq",
		keywords: faqKeywords,
		section:  model.SectionFAQ,
		notReady: "That sounds like a common question, but our FAQ hasn't been set up yet. Please contact us directly and we'll be glad to help.",
	},
}

var contactTopic = topic{
	name:     "contact",
	keywords: contactKeywords,
	section:  model.SectionContactInfo,
	reply:    "You can contact us through the contact form on our website, or reach our team by email or phone during business hours.",
}

var cannedTopics = []topic{
	{name: "greeting", keywords: []string{"hello", "hi", "hey", "greetings"}, reply: "Hello! How can I assist you today?"},
	{name: "thanks", keywords: []string{"thank", "thanks"}, reply: "You're welcome! Is there anything else I can help with?"},
	{name: "farewell", keywords: []string{"bye", "goodbye", "later"}, reply: "Goodbye! Feel free to chat again if you have more questions."},
}

const pageDeflection = "I couldn't find a specific answer to that, but the content on this page may help. You can also ask me about our company, how to find your way around the site, or our latest news."

// Deflections are used when nothing matches and there is no page content.
var Deflections = []string{
	"I'm not sure I understand. Could you rephrase your question? I can provide information about our company, help you navigate the website, or share recent news.",
	"I don't have an answer for that yet. Try asking about our company, our services, or how to get in touch.",
	"Sorry, I didn't quite catch that. You can ask me who we are, where to find something on the site, or what's new.",
	"That's outside what I can help with right now. Would you like to know more about our company or how to contact us?",
}
