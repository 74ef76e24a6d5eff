package mba

import (
	"bytes"
	"math"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFrequentItemsets(t *testing.T) {
	// 4 transactions; {Paper, Binders} co-occurs in 2 of them.
	txns := [][]string{
		{"Paper", "Binders"},
		{"Paper", "Binders", "Chairs"},
		{"Paper"},
		{"Chairs"},
	}

	sets := FrequentItemsets(txns, 0.5)
	got := make(map[string]float64, len(sets))
	for _, s := range sets {
		got[strings.Join(s.Items, "+")] = s.Support
	}

	want := map[string]float64{
		"Paper":         0.75,
		"Binders":       0.5,
		"Chairs":        0.5,
		"Binders+Paper": 0.5,
	}
	if len(got) != len(want) {
		t.Fatalf("itemsets = %v, want %v", got, want)
	}
	for k, v := range want {
		if !almostEqual(got[k], v) {
			t.Errorf("support[%s] = %v, want %v", k, got[k], v)
		}
	}
}

func TestFrequentItemsets_Empty(t *testing.T) {
	if sets := FrequentItemsets(nil, 0.001); len(sets) != 0 {
		t.Errorf("FrequentItemsets(nil) = %v, want empty", sets)
	}
}

func TestMine_ConfidenceAndLift(t *testing.T) {
	// P(Binders|Paper) = 2/3, P(Binders) = 1/2 -> lift 4/3.
	txns := [][]string{
		{"Paper", "Binders"},
		{"Paper", "Binders"},
		{"Paper"},
		{"Chairs"},
	}

	rules := Mine(txns, Options{MinSupport: 0.25, Metric: MetricLift, MinThreshold: 1.0})
	var found *Rule
	for i, r := range rules {
		if reflect.DeepEqual(r.Antecedent, []string{"Paper"}) && reflect.DeepEqual(r.Consequent, []string{"Binders"}) {
			found = &rules[i]
		}
	}
	if found == nil {
		t.Fatalf("rule Paper->Binders not mined, got %v", rules)
	}
	if !almostEqual(found.Confidence, 2.0/3.0) {
		t.Errorf("confidence = %v, want 2/3", found.Confidence)
	}
	if !almostEqual(found.Lift, 4.0/3.0) {
		t.Errorf("lift = %v, want 4/3", found.Lift)
	}
	if !almostEqual(found.Support, 0.5) {
		t.Errorf("support = %v, want 0.5", found.Support)
	}
}

func TestMine_Disjointness(t *testing.T) {
	txns := [][]string{
		{"Paper", "Binders", "Chairs"},
		{"Paper", "Binders"},
		{"Paper", "Chairs"},
		{"Binders", "Chairs"},
	}

	rules := Mine(txns, Options{MinSupport: 0.1, Metric: MetricLift, MinThreshold: 0})
	for _, r := range rules {
		if len(r.Antecedent) == 0 || len(r.Consequent) == 0 {
			t.Fatalf("empty side in rule %+v", r)
		}
		seen := make(map[string]bool)
		for _, a := range r.Antecedent {
			seen[a] = true
		}
		for _, c := range r.Consequent {
			if seen[c] {
				t.Errorf("rule %+v: consequent intersects antecedent", r)
			}
		}
	}
}

func TestMine_SortedByConfidenceAscending(t *testing.T) {
	txns := [][]string{
		{"Paper", "Binders"},
		{"Paper", "Binders"},
		{"Paper", "Chairs"},
		{"Binders"},
	}

	rules := Mine(txns, Options{MinSupport: 0.1, Metric: MetricLift, MinThreshold: 0})
	if !sort.SliceIsSorted(rules, func(i, j int) bool {
		return rules[i].Confidence < rules[j].Confidence
	}) {
		t.Errorf("rules not sorted by confidence ascending: %v", rules)
	}
}

func TestMine_ThresholdMayYieldNothing(t *testing.T) {
	txns := [][]string{{"Paper"}, {"Binders"}}
	rules := Mine(txns, DefaultOptions())
	if len(rules) != 0 {
		t.Errorf("Mine() = %v, want no rules", rules)
	}
	if ix := BuildIndex(rules); len(ix) != 0 {
		t.Errorf("BuildIndex() = %v, want empty", ix)
	}
}

func TestKey_OrderInsensitive(t *testing.T) {
	if Key([]string{"Paper", "Binders"}) != Key([]string{"Binders", "Paper"}) {
		t.Error("Key() differs for permuted sets")
	}
}

func TestIndex_LookupGrouping(t *testing.T) {
	rules := []Rule{
		{Antecedent: []string{"Binders", "Paper"}, Consequent: []string{"Chairs"}, Confidence: 0.2, Lift: 1.6},
		{Antecedent: []string{"Binders", "Paper"}, Consequent: []string{"Storage"}, Confidence: 0.5, Lift: 2.1},
		{Antecedent: []string{"Art"}, Consequent: []string{"Paper"}, Confidence: 0.9, Lift: 3.0},
	}

	ix := BuildIndex(rules)
	got := ix.Lookup([]string{"Paper", "Binders"}) // permuted on purpose
	if len(got) != 2 {
		t.Fatalf("Lookup() returned %d consequents, want 2", len(got))
	}
	// Bucket keeps insertion order: last entry is the highest confidence.
	if got[1].Confidence != 0.5 {
		t.Errorf("bucket tail confidence = %v, want 0.5", got[1].Confidence)
	}
	if ix.Lookup([]string{"Chairs"}) != nil {
		t.Error("Lookup(miss) should be nil")
	}
}

func TestReport(t *testing.T) {
	rules := []Rule{
		{Antecedent: []string{"A"}, Consequent: []string{"B"}, Support: 0.1, Confidence: 0.7, Lift: 2.5},
		{Antecedent: []string{"C"}, Consequent: []string{"D"}, Support: 0.3, Confidence: 0.65, Lift: 2.1},
		{Antecedent: []string{"E"}, Consequent: []string{"F"}, Support: 0.5, Confidence: 0.9, Lift: 1.5}, // lift too low
		{Antecedent: []string{"G"}, Consequent: []string{"H"}, Support: 0.5, Confidence: 0.6, Lift: 3.0}, // confidence not > 0.6
	}

	got := Report(rules)
	if len(got) != 2 {
		t.Fatalf("Report() kept %d rules, want 2", len(got))
	}
	// Sorted by support descending.
	if got[0].Support != 0.3 || got[1].Support != 0.1 {
		t.Errorf("Report() order = [%v %v], want support descending", got[0].Support, got[1].Support)
	}
}

func TestWriteRulesCSV(t *testing.T) {
	rules := []Rule{
		{Antecedent: []string{"Paper", "Binders"}, Consequent: []string{"Chairs"}, Support: 0.25, Confidence: 0.5, Lift: 2},
	}

	var buf bytes.Buffer
	if err := WriteRulesCSV(&buf, rules); err != nil {
		t.Fatalf("WriteRulesCSV() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "antecedents,consequents,support,confidence,lift\n") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, `"Paper, Binders",Chairs,0.25,0.5,2`) {
		t.Errorf("missing rule row: %q", out)
	}
}
