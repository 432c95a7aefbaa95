// Package validator gates generated text before it is shown to a visitor.
package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/textutil"
)

const (
	MinLength = 10
	MaxLength = 1000
)

// DefaultRefusalPatterns are matched case-insensitively as substrings.
var DefaultRefusalPatterns = []string{
	"i cannot provide information",
	"i can't provide information",
	"i don't have access to",
	"i do not have access to",
	"i don't have information",
	"i do not have information",
	"i'm not able to provide",
	"i am not able to provide",
	"as an ai language model",
	"i'm unable to help with",
	"i am unable to help with",
}

// Result is the outcome of Check. Text is formatted even when Usable is false.
type Result struct {
	Usable bool
	Text   string
	Reason error
}

type Validator struct {
	patterns []string
}

// New builds a validator. A nil or empty list uses DefaultRefusalPatterns.
func New(patterns []string) *Validator {
	if len(patterns) == 0 {
		patterns = DefaultRefusalPatterns
	}
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Validator{patterns: lowered}
}

// Check applies the quality gate to raw model output.
func (v *Validator) Check(raw string) Result {
	text := strings.TrimSpace(raw)
	res := Result{Text: Format(text)}

	switch {
	case text == "":
		res.Reason = fmt.Errorf("%w: empty", model.ErrValidationRejected)
	case utf8.RuneCountInString(text) < MinLength:
		res.Reason = fmt.Errorf("%w: too short", model.ErrValidationRejected)
	default:
		if p, ok := v.refusal(text); ok {
			res.Reason = fmt.Errorf("%w: refusal %q", model.ErrValidationRejected, p)
		} else {
			res.Usable = true
		}
	}
	return res
}

func (v *Validator) refusal(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, p := range v.patterns {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	return "", false
}

// Format keeps Markdown and caps length at a sentence boundary where possible.
func Format(text string) string {
	return textutil.TruncateAtSentence(strings.TrimSpace(text), MaxLength)
}
