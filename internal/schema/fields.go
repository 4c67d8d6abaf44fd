package schema

// FieldKey identifies a numeric model feature. Keys match the remote
// service's feature schema verbatim and must never be renamed.
type FieldKey string

const (
	KeyAdultMortality        FieldKey = "adult_mortality"
	KeyInfantDeaths          FieldKey = "infant_deaths"
	KeyAlcohol               FieldKey = "alcohol"
	KeyPercentageExpenditure FieldKey = "percentage_expenditure"
	KeyHepatitisB            FieldKey = "hepatitis_b"
	KeyMeasles               FieldKey = "measles"
	KeyBMI                   FieldKey = "bmi"
	KeyUnderFiveDeaths       FieldKey = "under_five_deaths"
	KeyPolio                 FieldKey = "polio"
	KeyTotalExpenditure      FieldKey = "total_expenditure"
	KeyDiphtheria            FieldKey = "diphtheria"
	KeyHIVAIDS               FieldKey = "hiv_aids"
	KeyGDP                   FieldKey = "gdp"
	KeyPopulation            FieldKey = "population"
	KeyThinness1To19         FieldKey = "thinness_1_19_years"
	KeyThinness5To9          FieldKey = "thinness_5_9_years"
	KeyIncomeComposition     FieldKey = "income_composition_of_resources"
	KeySchooling             FieldKey = "schooling"
)

// KeyStatus is the categorical development-status feature. It is not a
// numeric field: its domain is {0, 1} by construction of the input
// mechanism and it never goes through range validation.
const KeyStatus = "status_numeric"

// FieldDefinition describes one numeric feature: identity, human label,
// and the inclusive range the remote model was trained on.
type FieldDefinition struct {
	Key   FieldKey `json:"key"`
	Label string   `json:"label"`
	Unit  string   `json:"unit,omitempty"` // Display unit (e.g., "per 1000", "%")
	Min   float64  `json:"min"`            // Inclusive lower bound
	Max   float64  `json:"max"`            // Inclusive upper bound
}

// fields is the canonical registry. Order is significant: it is both the
// display order and the validation order, so the first failing field in a
// partially filled form is deterministic.
var fields = []FieldDefinition{
	{Key: KeyAdultMortality, Label: "Adult Mortality", Unit: "per 1000 adults", Min: 1, Max: 1000},
	{Key: KeyInfantDeaths, Label: "Infant Deaths", Unit: "per 1000 population", Min: 0, Max: 2000},
	{Key: KeyAlcohol, Label: "Alcohol Consumption", Unit: "litres per capita", Min: 0, Max: 20},
	{Key: KeyPercentageExpenditure, Label: "Health Expenditure", Unit: "% of GDP per capita", Min: 0, Max: 20000},
	{Key: KeyHepatitisB, Label: "Hepatitis B Coverage", Unit: "%", Min: 0, Max: 100},
	{Key: KeyMeasles, Label: "Measles Cases", Unit: "per 1000 population", Min: 0, Max: 500000},
	{Key: KeyBMI, Label: "Average BMI", Min: 10, Max: 80},
	{Key: KeyUnderFiveDeaths, Label: "Under-Five Deaths", Unit: "per 1000 population", Min: 0, Max: 3000},
	{Key: KeyPolio, Label: "Polio Coverage", Unit: "%", Min: 0, Max: 100},
	{Key: KeyTotalExpenditure, Label: "Government Health Expenditure", Unit: "% of total expenditure", Min: 0, Max: 20},
	{Key: KeyDiphtheria, Label: "Diphtheria Coverage", Unit: "%", Min: 0, Max: 100},
	{Key: KeyHIVAIDS, Label: "HIV/AIDS Deaths", Unit: "per 1000 live births", Min: 0, Max: 50},
	{Key: KeyGDP, Label: "GDP per Capita", Unit: "USD", Min: 0, Max: 150000},
	{Key: KeyPopulation, Label: "Population", Min: 1000, Max: 1_500_000_000},
	{Key: KeyThinness1To19, Label: "Thinness 10-19 Years", Unit: "%", Min: 0, Max: 30},
	{Key: KeyThinness5To9, Label: "Thinness 5-9 Years", Unit: "%", Min: 0, Max: 30},
	{Key: KeyIncomeComposition, Label: "Income Composition of Resources", Unit: "HDI 0-1", Min: 0, Max: 1},
	{Key: KeySchooling, Label: "Schooling", Unit: "years", Min: 0, Max: 25},
}

// index maps keys to registry positions for O(1) lookup.
var index = func() map[FieldKey]int {
	m := make(map[FieldKey]int, len(fields))
	for i, f := range fields {
		m[f.Key] = i
	}
	return m
}()

// Fields returns the registry in canonical order. Callers must not
// mutate the returned slice.
func Fields() []FieldDefinition {
	return fields
}

// Lookup returns the definition for a key.
func Lookup(key FieldKey) (FieldDefinition, bool) {
	i, ok := index[key]
	if !ok {
		return FieldDefinition{}, false
	}
	return fields[i], true
}

// Count returns the number of numeric fields (status excluded).
func Count() int {
	return len(fields)
}
