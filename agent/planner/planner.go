package planner

import (
	"fmt"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// Confidence per branch. These are fixed policy constants, not scores from
// a model.
const (
	confidenceToolReady   = 0.9
	confidenceMissingCalc = 0.8
	confidenceNeedsOutlet = 0.85
	confidenceVague       = 0.7
	confidenceChat        = 0.5
)

const (
	calculationPrompt = "I can help with calculations! What numbers and operation do you need? (e.g., '5 + 3' or '10 times 5')"
	outletVaguePrompt = "Which outlet are you asking about? Please specify a location (e.g., SS2, SS15, Damansara) or what kind of information you're looking for."
)

// Planner decides the next action for one user message. The decision is a
// pure function of the text; session history never influences it.
type Planner struct {
	classifier *Classifier
	extractor  *Extractor
}

func New() *Planner {
	return &Planner{
		classifier: NewClassifier(),
		extractor:  NewExtractor(),
	}
}

func (p *Planner) Plan(text string) contractx.PlanningResult {
	intent := p.classifier.Classify(text)

	switch intent {
	case contractx.IntentCalculation:
		return p.planCalculation(text)
	case contractx.IntentOutletInfo:
		return p.planOutletInfo(text)
	default:
		return contractx.PlanningResult{
			Intent:     intent,
			Action:     contractx.ActionRespondDirectly,
			Confidence: confidenceChat,
		}
	}
}

func (p *Planner) planCalculation(text string) contractx.PlanningResult {
	data := p.extractor.ExtractCalculation(text)
	if data == nil {
		return contractx.PlanningResult{
			Intent:            contractx.IntentCalculation,
			Action:            contractx.ActionAskForInfo,
			MissingInfoPrompt: calculationPrompt,
			Confidence:        confidenceMissingCalc,
		}
	}
	return contractx.PlanningResult{
		Intent:      contractx.IntentCalculation,
		Action:      contractx.ActionUseCalculator,
		Calculation: data,
		Confidence:  confidenceToolReady,
	}
}

func (p *Planner) planOutletInfo(text string) contractx.PlanningResult {
	query := p.extractor.ExtractOutlet(text)
	switch {
	case query == nil:
		return contractx.PlanningResult{
			Intent:            contractx.IntentOutletInfo,
			Action:            contractx.ActionAskForInfo,
			MissingInfoPrompt: outletVaguePrompt,
			Confidence:        confidenceVague,
		}
	case query.Location != "" && !contractx.IsGeneralArea(query.Location):
		// A specific outlet always beats a general area mention; the
		// extractor's priority order already resolved any overlap.
		return contractx.PlanningResult{
			Intent:     contractx.IntentOutletInfo,
			Action:     contractx.ActionUseOutletDB,
			Outlet:     query,
			Confidence: confidenceToolReady,
		}
	case query.InfoType != "":
		return contractx.PlanningResult{
			Intent: contractx.IntentOutletInfo,
			Action: contractx.ActionAskForInfo,
			MissingInfoPrompt: fmt.Sprintf(
				"Which specific outlet are you referring to (e.g., SS2, SS15, Damansara) to check the %s?",
				query.InfoType.Human()),
			Outlet:     query,
			Confidence: confidenceNeedsOutlet,
		}
	default:
		return contractx.PlanningResult{
			Intent: contractx.IntentOutletInfo,
			Action: contractx.ActionAskForInfo,
			MissingInfoPrompt: fmt.Sprintf(
				"Yes, we have outlets in %s! Which specific outlet are you referring to?",
				query.Location),
			Outlet:     query,
			Confidence: confidenceNeedsOutlet,
		}
	}
}
