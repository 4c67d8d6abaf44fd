package schema

import "testing"

func TestFields_Count(t *testing.T) {
	if got := len(Fields()); got != 18 {
		t.Errorf("expected 18 numeric fields, got %d", got)
	}
	if Count() != len(Fields()) {
		t.Errorf("Count() = %d, want %d", Count(), len(Fields()))
	}
}

func TestFields_UniqueKeys(t *testing.T) {
	seen := make(map[FieldKey]bool)
	for _, f := range Fields() {
		if seen[f.Key] {
			t.Errorf("duplicate key %q", f.Key)
		}
		seen[f.Key] = true
	}
}

func TestFields_Order(t *testing.T) {
	// The registry order is the validation and display order; it must
	// match the service's feature order.
	want := []FieldKey{
		KeyAdultMortality, KeyInfantDeaths, KeyAlcohol, KeyPercentageExpenditure,
		KeyHepatitisB, KeyMeasles, KeyBMI, KeyUnderFiveDeaths, KeyPolio,
		KeyTotalExpenditure, KeyDiphtheria, KeyHIVAIDS, KeyGDP, KeyPopulation,
		KeyThinness1To19, KeyThinness5To9, KeyIncomeComposition, KeySchooling,
	}
	fields := Fields()
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i, key := range want {
		if fields[i].Key != key {
			t.Errorf("position %d: expected %q, got %q", i, key, fields[i].Key)
		}
	}
}

func TestFields_Ranges(t *testing.T) {
	cases := map[FieldKey][2]float64{
		KeyAdultMortality:    {1, 1000},
		KeyInfantDeaths:      {0, 2000},
		KeyBMI:               {10, 80},
		KeyPopulation:        {1000, 1_500_000_000},
		KeyIncomeComposition: {0, 1},
		KeySchooling:         {0, 25},
	}
	for key, bounds := range cases {
		f, ok := Lookup(key)
		if !ok {
			t.Errorf("Lookup(%q) not found", key)
			continue
		}
		if f.Min != bounds[0] || f.Max != bounds[1] {
			t.Errorf("%s: range %g-%g, want %g-%g", key, f.Min, f.Max, bounds[0], bounds[1])
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, ok := Lookup("no_such_field"); ok {
		t.Error("expected unknown key to miss")
	}
}

func TestExample_CoversAllFields(t *testing.T) {
	for _, f := range Fields() {
		if _, ok := Example[f.Key]; !ok {
			t.Errorf("example dataset missing %q", f.Key)
		}
	}
	if len(Example) != Count() {
		t.Errorf("example has %d entries, want %d", len(Example), Count())
	}
	if ExampleStatus != StatusDeveloping {
		t.Errorf("example status = %v, want Developing", ExampleStatus)
	}
}

func TestStatus(t *testing.T) {
	if StatusDeveloping.String() != "Developing" || StatusDeveloped.String() != "Developed" {
		t.Error("unexpected status strings")
	}
	if !StatusDeveloping.Valid() || !StatusDeveloped.Valid() {
		t.Error("expected 0 and 1 to be valid")
	}
	if Status(2).Valid() {
		t.Error("expected 2 to be invalid")
	}
}
