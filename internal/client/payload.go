package client

import (
	"encoding/json"

	"github.com/ppiankov/lifespan/internal/model"
	"github.com/ppiankov/lifespan/internal/schema"
)

// predictRequest is the exact wire shape of POST /predict. Keys match
// the remote feature schema verbatim: no renaming, no unit conversion.
// Status travels as an integer; everything else as floating point.
type predictRequest struct {
	AdultMortality        float64 `json:"adult_mortality"`
	InfantDeaths          float64 `json:"infant_deaths"`
	Alcohol               float64 `json:"alcohol"`
	PercentageExpenditure float64 `json:"percentage_expenditure"`
	HepatitisB            float64 `json:"hepatitis_b"`
	Measles               float64 `json:"measles"`
	BMI                   float64 `json:"bmi"`
	UnderFiveDeaths       float64 `json:"under_five_deaths"`
	Polio                 float64 `json:"polio"`
	TotalExpenditure      float64 `json:"total_expenditure"`
	Diphtheria            float64 `json:"diphtheria"`
	HIVAIDS               float64 `json:"hiv_aids"`
	GDP                   float64 `json:"gdp"`
	Population            float64 `json:"population"`
	Thinness1To19         float64 `json:"thinness_1_19_years"`
	Thinness5To9          float64 `json:"thinness_5_9_years"`
	IncomeComposition     float64 `json:"income_composition_of_resources"`
	Schooling             float64 `json:"schooling"`
	StatusNumeric         int     `json:"status_numeric"`
}

// BuildPayload serializes a validated request into the JSON body the
// prediction service expects. Pure transformation, deterministic.
func BuildPayload(req *model.ValidatedRequest) ([]byte, error) {
	wire := predictRequest{
		AdultMortality:        req.Value(schema.KeyAdultMortality),
		InfantDeaths:          req.Value(schema.KeyInfantDeaths),
		Alcohol:               req.Value(schema.KeyAlcohol),
		PercentageExpenditure: req.Value(schema.KeyPercentageExpenditure),
		HepatitisB:            req.Value(schema.KeyHepatitisB),
		Measles:               req.Value(schema.KeyMeasles),
		BMI:                   req.Value(schema.KeyBMI),
		UnderFiveDeaths:       req.Value(schema.KeyUnderFiveDeaths),
		Polio:                 req.Value(schema.KeyPolio),
		TotalExpenditure:      req.Value(schema.KeyTotalExpenditure),
		Diphtheria:            req.Value(schema.KeyDiphtheria),
		HIVAIDS:               req.Value(schema.KeyHIVAIDS),
		GDP:                   req.Value(schema.KeyGDP),
		Population:            req.Value(schema.KeyPopulation),
		Thinness1To19:         req.Value(schema.KeyThinness1To19),
		Thinness5To9:          req.Value(schema.KeyThinness5To9),
		IncomeComposition:     req.Value(schema.KeyIncomeComposition),
		Schooling:             req.Value(schema.KeySchooling),
		StatusNumeric:         int(req.Status),
	}
	return json.Marshal(wire)
}
