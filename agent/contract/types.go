package contract

import "strings"

type Intent string

const (
	IntentCalculation Intent = "calculation"
	IntentOutletInfo  Intent = "outlet_info"
	IntentGeneralChat Intent = "general_chat"
	IntentUnknown     Intent = "unknown"
)

type Action string

const (
	ActionAskForInfo      Action = "ask_for_info"
	ActionUseCalculator   Action = "use_calculator"
	ActionUseOutletDB     Action = "use_outlet_db"
	ActionRespondDirectly Action = "respond_directly"
)

type InfoType string

const (
	InfoOpeningHours InfoType = "opening_hours"
	InfoClosingHours InfoType = "closing_hours"
	InfoHours        InfoType = "hours"
)

// Human renders the info type the way it is spoken in a reply,
// e.g. "opening_hours" -> "opening hours".
func (t InfoType) Human() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// Canonical names the slot extractor resolves mentions to. The first three
// are concrete outlets, the last two are general areas that contain outlets.
const (
	OutletSS2        = "SS2"
	OutletSS15       = "SS15"
	OutletDamansara  = "Damansara"
	AreaPetalingJaya = "Petaling Jaya"
	AreaKualaLumpur  = "Kuala Lumpur"
)

// IsGeneralArea reports whether location names an area rather than a
// specific outlet the database can answer for directly.
func IsGeneralArea(location string) bool {
	return location == AreaPetalingJaya || location == AreaKualaLumpur
}

type CalculationData struct {
	Num1     int    `json:"num1"`
	Operator string `json:"operator"`
	Num2     int    `json:"num2"`
}

// OutletQuery carries whichever outlet slots were found. Either field may be
// empty; a nil *OutletQuery means neither was.
type OutletQuery struct {
	Location string   `json:"location,omitempty"`
	InfoType InfoType `json:"info_type,omitempty"`
}

type PlanningResult struct {
	Intent            Intent           `json:"intent"`
	Action            Action           `json:"action"`
	MissingInfoPrompt string           `json:"missing_info_prompt,omitempty"`
	Calculation       *CalculationData `json:"calculation,omitempty"`
	Outlet            *OutletQuery     `json:"outlet,omitempty"`
	Confidence        float64          `json:"confidence"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
