// Package fallback answers from keyword matches when generation is unavailable
// or rejected. It never performs I/O.
package fallback

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/textutil"
)

const MaxAnswerLength = 500

// Answer is the fallback reply and the topic that produced it.
type Answer struct {
	Text  string
	Topic string
}

type Engine struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns an engine drawing deflections from rnd. A nil source is seeded from the clock.
func New(rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rnd: rnd}
}

// Respond evaluates topics in fixed order; the first topic with any keyword hit wins.
func (e *Engine) Respond(message, pageContent string, kb model.KnowledgeBase) Answer {
	msg := strings.ToLower(message)

	for _, t := range knowledgeTopics {
		if containsKeywords(msg, t.keywords) {
			return fromSection(t, kb)
		}
	}
	for _, name := range extraSections(kb) {
		if containsKeywords(msg, sectionKeywords(name)) {
			return fromSection(topic{name: name, section: name}, kb)
		}
	}
	for _, t := range cannedTopics {
		if containsKeywords(msg, t.keywords) {
			return Answer{Text: t.reply, Topic: t.name}
		}
	}
	if containsKeywords(msg, contactTopic.keywords) {
		if content := kb.Section(contactTopic.section); strings.TrimSpace(content) != "" {
			return fromSection(contactTopic, kb)
		}
		return Answer{Text: contactTopic.reply, Topic: contactTopic.name}
	}

	if strings.TrimSpace(pageContent) != "" {
		return Answer{Text: pageDeflection, Topic: "page"}
	}
	return Answer{Text: e.deflection(), Topic: "deflection"}
}

func (e *Engine) deflection() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Deflections[e.rnd.Intn(len(Deflections))]
}

func fromSection(t topic, kb model.KnowledgeBase) Answer {
	content := textutil.Clean(kb.Section(t.section))
	if content == "" {
		msg := t.notReady
		if msg == "" {
			msg = "I'd like to help with that, but the information hasn't been set up yet. Please contact us directly."
		}
		return Answer{Text: msg, Topic: t.name}
	}
	text := "**" + textutil.SectionTitle(t.section) + "**\n\n" + content
	return Answer{Text: textutil.TruncateAtSentence(text, MaxAnswerLength), Topic: t.name}
}

// extraSections lists non-fixed knowledge sections in sorted order.
func extraSections(kb model.KnowledgeBase) []string {
	var out []string
	for name := range kb {
		switch name {
		case model.SectionCompanyInfo, model.SectionWebsiteNavigation, model.SectionRecentNews,
			model.SectionFAQ, model.SectionContactInfo:
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// sectionKeywords derives match terms from a custom section name, e.g. "our_pricing" -> "our pricing", "pricing".
func sectionKeywords(name string) []string {
	phrase := strings.ToLower(strings.ReplaceAll(name, "_", " "))
	words := strings.Fields(phrase)
	out := []string{phrase}
	for _, w := range words {
		if len(w) >= 4 && w != phrase {
			out = append(out, w)
		}
	}
	return out
}

// containsKeywords reports whether any keyword is a substring of s.
func containsKeywords(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
