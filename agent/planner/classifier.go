package planner

import (
	"regexp"
	"strings"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// Classifier-only patterns. The calculation capture patterns shared with the
// extractor live in extractor.go.
var (
	aggregateCalcPattern = regexp.MustCompile(`sum of|difference of|product of|quotient of`)
	calcKeywordPattern   = regexp.MustCompile(`calculate|math`)
	// The loose catch-all requires a digit somewhere after the question
	// word, so digit-free small talk stays general chat.
	looseCalcPattern = regexp.MustCompile(`(what's|whats|what is)\s+[\w\s]*\d+`)

	outletNumberPattern  = regexp.MustCompile(`ss\s*\d+`)
	outletKeywordPattern = regexp.MustCompile(`outlet|store|shop|location|branch`)
	outletInfoPattern    = regexp.MustCompile(`opening|closing|hours|time`)
	outletAreaPattern    = regexp.MustCompile(`damansara|petaling jaya|kuala lumpur|pj|kl`)
)

type rule struct {
	matches func(string) bool
	intent  contractx.Intent
}

// Classifier assigns an intent to a single user message by walking an
// ordered rule list; the first rule that fires anywhere in the lowercased
// input wins. Calculation rules outrank outlet rules, and anything
// unmatched is general chat. The classifier holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	rules []rule
}

func NewClassifier() *Classifier {
	return &Classifier{rules: []rule{
		{symbolicCalcPattern.MatchString, contractx.IntentCalculation},
		{questionCalcPattern.MatchString, contractx.IntentCalculation},
		{wordedCalcPattern.MatchString, contractx.IntentCalculation},
		{aggregateCalcPattern.MatchString, contractx.IntentCalculation},
		{calcKeywordPattern.MatchString, contractx.IntentCalculation},
		{looseCalcPattern.MatchString, contractx.IntentCalculation},
		{outletNumberPattern.MatchString, contractx.IntentOutletInfo},
		{outletKeywordPattern.MatchString, contractx.IntentOutletInfo},
		{outletInfoPattern.MatchString, contractx.IntentOutletInfo},
		{outletAreaPattern.MatchString, contractx.IntentOutletInfo},
	}}
}

// Classify never returns IntentUnknown; that value is reserved for foreign
// planning results at the dispatch boundary.
func (c *Classifier) Classify(text string) contractx.Intent {
	lowered := strings.ToLower(text)
	for _, r := range c.rules {
		if r.matches(lowered) {
			return r.intent
		}
	}
	return contractx.IntentGeneralChat
}
