package schema

// Status is the categorical development-status selection.
type Status int

const (
	StatusDeveloping Status = 0
	StatusDeveloped  Status = 1
)

func (s Status) String() string {
	if s == StatusDeveloped {
		return "Developed"
	}
	return "Developing"
}

// Valid reports whether the value is in the {0, 1} domain.
func (s Status) Valid() bool {
	return s == StatusDeveloping || s == StatusDeveloped
}

// Example is the literal example dataset shipped with the form's
// "fill example" action. Values mirror the remote service's published
// example request.
var Example = map[FieldKey]string{
	KeyAdultMortality:        "150",
	KeyInfantDeaths:          "20",
	KeyAlcohol:               "5",
	KeyPercentageExpenditure: "500",
	KeyHepatitisB:            "85",
	KeyMeasles:               "100",
	KeyBMI:                   "30",
	KeyUnderFiveDeaths:       "25",
	KeyPolio:                 "90",
	KeyTotalExpenditure:      "6.5",
	KeyDiphtheria:            "88",
	KeyHIVAIDS:               "1",
	KeyGDP:                   "5000",
	KeyPopulation:            "10000000",
	KeyThinness1To19:         "5",
	KeyThinness5To9:          "5",
	KeyIncomeComposition:     "0.65",
	KeySchooling:             "12",
}

// ExampleStatus is the status selection of the example dataset.
const ExampleStatus = StatusDeveloping
