package planner

import (
	"regexp"
	"strconv"
	"strings"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// Capture patterns for the three calculation strategies. The classifier
// reuses them as plain matchers.
var (
	symbolicCalcPattern = regexp.MustCompile(`(\d+)\s*([+\-*/])\s*(\d+)`)
	questionCalcPattern = regexp.MustCompile(`what is (\d+)\s*([+\-*/])\s*(\d+)`)
	wordedCalcPattern   = regexp.MustCompile(`(\d+)\s*(divided by|plus|minus|times|multiply|divide|subtract)\s*(\d+)`)
)

var operatorWords = map[string]string{
	"plus":       "+",
	"minus":      "-",
	"subtract":   "-",
	"times":      "*",
	"multiply":   "*",
	"divide":     "/",
	"divided by": "/",
}

// Location and info-type resolution tables. Checked in order; the first
// needle found in the lowercased text wins, so a specific outlet mention
// shadows the area that contains it.
var locationRules = []struct {
	needles  []string
	location string
}{
	{[]string{"ss2", "ss 2"}, contractx.OutletSS2},
	{[]string{"ss15", "ss 15"}, contractx.OutletSS15},
	{[]string{"damansara"}, contractx.OutletDamansara},
	{[]string{"petaling jaya", "pj"}, contractx.AreaPetalingJaya},
	{[]string{"kuala lumpur", "kl"}, contractx.AreaKualaLumpur},
}

var infoTypeRules = []struct {
	needles []string
	info    contractx.InfoType
}{
	{[]string{"opening", "open"}, contractx.InfoOpeningHours},
	{[]string{"closing", "close"}, contractx.InfoClosingHours},
	{[]string{"hours", "time"}, contractx.InfoHours},
}

// Extractor pulls typed slots out of a classified message. Absence of a
// slot is an ordinary outcome, never an error.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractCalculation tries three strategies in order: a symbolic expression
// against the original-case text, a spelled-out operator against the
// lowercased text, then a "what is N op N" question. A strategy whose
// number tokens fail integer parsing falls through to the next strategy.
func (e *Extractor) ExtractCalculation(text string) *contractx.CalculationData {
	if m := symbolicCalcPattern.FindStringSubmatch(text); m != nil {
		if data := buildCalculation(m[1], m[2], m[3]); data != nil {
			return data
		}
	}

	lowered := strings.ToLower(text)
	if m := wordedCalcPattern.FindStringSubmatch(lowered); m != nil {
		if data := buildCalculation(m[1], operatorWords[m[2]], m[3]); data != nil {
			return data
		}
	}
	if m := questionCalcPattern.FindStringSubmatch(lowered); m != nil {
		if data := buildCalculation(m[1], m[2], m[3]); data != nil {
			return data
		}
	}
	return nil
}

// ExtractOutlet scans the lowercased text for a location and an info type
// independently; either slot may resolve without the other. Neither slot
// resolving returns nil.
func (e *Extractor) ExtractOutlet(text string) *contractx.OutletQuery {
	lowered := strings.ToLower(text)

	var location string
	for _, r := range locationRules {
		if containsAny(lowered, r.needles) {
			location = r.location
			break
		}
	}

	var infoType contractx.InfoType
	for _, r := range infoTypeRules {
		if containsAny(lowered, r.needles) {
			infoType = r.info
			break
		}
	}

	if location == "" && infoType == "" {
		return nil
	}
	return &contractx.OutletQuery{Location: location, InfoType: infoType}
}

func buildCalculation(rawNum1, operator, rawNum2 string) *contractx.CalculationData {
	num1, err := strconv.Atoi(rawNum1)
	if err != nil {
		return nil
	}
	num2, err := strconv.Atoi(rawNum2)
	if err != nil {
		return nil
	}
	return &contractx.CalculationData{Num1: num1, Operator: operator, Num2: num2}
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
