package recommend

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/retailrec/catalogue"
	"github.com/rushteam/retailrec/cf"
	"github.com/rushteam/retailrec/core"
	"github.com/rushteam/retailrec/dataset"
	"github.com/rushteam/retailrec/mba"
)

func row(sub, product string) dataset.Row {
	return dataset.Row{SubCategory: sub, ProductName: product}
}

// fixtureEngine builds a small model:
//   - catalogue: Paper (3 rows) > Binders (2) > Chairs (1) > Storage (1)
//   - customers: Alice {Paper, Binders}, Bob {Paper, Binders, Chairs}, Carol {Storage}
//   - rule: {Paper} -> {Chairs}
func fixtureEngine() *Engine {
	rows := []dataset.Row{
		row("Paper", "Xerox 200"),
		row("Paper", "Xerox 200"),
		row("Paper", "Easy Staplers"),
		row("Binders", "Cardinal Binder"),
		row("Binders", "Avery Binder"),
		row("Chairs", "Task Chair"),
		row("Storage", "Carton Box"),
	}
	customers := []string{"Alice", "Bob", "Carol"}
	baskets := [][]string{
		{"Paper", "Binders"},
		{"Paper", "Binders", "Chairs"},
		{"Storage"},
	}
	rules := []mba.Rule{
		{Antecedent: []string{"Paper"}, Consequent: []string{"Chairs"}, Confidence: 0.5, Lift: 2.0},
	}
	return &Engine{
		Rules:     mba.BuildIndex(rules),
		CF:        cf.BuildModel(customers, baskets),
		Catalogue: catalogue.Build(rows),
	}
}

func recommend(t *testing.T, e *Engine, rctx *core.RecommendContext) []string {
	t.Helper()
	out, err := e.Recommend(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	return out
}

func TestRecommend_GlobalFallback(t *testing.T) {
	e := fixtureEngine()

	got := recommend(t, e, &core.RecommendContext{CustomerName: "UnknownUser123"})
	// First item of the first 4 categories, category order by row count.
	want := []string{"Xerox 200", "Avery Binder", "Task Chair", "Carton Box"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback = %v, want %v", got, want)
	}
}

func TestRecommend_UnknownUserWithCategory(t *testing.T) {
	e := fixtureEngine()

	got := recommend(t, e, &core.RecommendContext{CustomerName: "UnknownUser123", Category: "Binders"})
	want := []string{"Avery Binder", "Cardinal Binder"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("category verbatim = %v, want %v", got, want)
	}

	// Unknown category degrades to empty, never faults.
	if got := recommend(t, e, &core.RecommendContext{CustomerName: "UnknownUser123", Category: "Phones"}); len(got) != 0 {
		t.Errorf("unknown category = %v, want empty", got)
	}
}

func TestRecommend_CFOnly(t *testing.T) {
	e := fixtureEngine()

	// Alice's CF recs: Chairs (via Bob), Storage (score 0 via Carol).
	// Both are catalogue keys, so they expand to their top products.
	got := recommend(t, e, &core.RecommendContext{CustomerName: "Alice"})
	want := []string{"Task Chair", "Carton Box"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cf-only = %v, want %v", got, want)
	}
}

func TestRecommend_CFWithCategory(t *testing.T) {
	e := fixtureEngine()

	// CF expansion (empty fallback) capped at 4 items, then the category
	// catalogue appended uncapped.
	got := recommend(t, e, &core.RecommendContext{CustomerName: "Alice", Category: "Paper"})
	want := []string{"Task Chair", "Carton Box", "Xerox 200", "Easy Staplers"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cf+category = %v, want %v", got, want)
	}
}

func TestRecommend_CartTakesPrecedenceOverCategory(t *testing.T) {
	e := fixtureEngine()

	withCategory := recommend(t, e, &core.RecommendContext{CustomerName: "Alice", Cart: []string{"Paper"}, Category: "Binders"})
	withoutCategory := recommend(t, e, &core.RecommendContext{CustomerName: "Alice", Cart: []string{"Paper"}})
	if !reflect.DeepEqual(withCategory, withoutCategory) {
		t.Errorf("category should be ignored when a cart is present: %v vs %v", withCategory, withoutCategory)
	}
}

func TestRecommend_BlendedUnknownUser(t *testing.T) {
	e := fixtureEngine()

	// alpha = 0: pure MBA. Rule {Paper} -> {Chairs} fires; Chairs expands.
	got := recommend(t, e, &core.RecommendContext{CustomerName: "UnknownUser123", Cart: []string{"Paper"}})
	want := []string{"Task Chair"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("blended unknown = %v, want %v", got, want)
	}

	// Consequents already in the cart contribute nothing.
	got = recommend(t, e, &core.RecommendContext{CustomerName: "UnknownUser123", Cart: []string{"Paper", "Chairs"}})
	if len(got) != 0 {
		t.Errorf("blended with consumed consequent = %v, want empty", got)
	}
}

func TestRecommend_EmptyNonNilCart(t *testing.T) {
	e := fixtureEngine()

	// Empty but non-nil cart takes the cart-present branch: zero subsets,
	// MBA contributes nothing, output is pure CF-weighted.
	got := recommend(t, e, &core.RecommendContext{CustomerName: "Alice", Cart: []string{}})
	want := []string{"Task Chair", "Carton Box"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("empty cart blended = %v, want %v", got, want)
	}

	// Unknown user + empty cart: both families empty, output empty, no fault.
	if got := recommend(t, e, &core.RecommendContext{CustomerName: "UnknownUser123", Cart: []string{}}); len(got) != 0 {
		t.Errorf("empty cart unknown user = %v, want empty", got)
	}
}

// alphaFixture builds a model where CF favours "Alpha" and MBA favours
// "Beta", so the two weight regimes order them differently.
func alphaFixture() *Engine {
	customers := []string{"Heavy", "Light", "V1", "V2"}
	baskets := [][]string{
		{"h1", "h2", "h3", "h4", "h5", "h6"},               // Heavy: 6 distinct items
		{"h1", "h2"},                                       // Light: 2 distinct items
		{"h1", "h2", "h3", "h4", "h5", "h6", "Alpha"},      // strong overlap voter
		{"h1", "Beta"},                                     // weak overlap voter
	}
	rules := []mba.Rule{
		{Antecedent: []string{"Cart1"}, Consequent: []string{"Beta"}, Confidence: 0.8, Lift: 2.5},
	}
	return &Engine{
		Rules:     mba.BuildIndex(rules),
		CF:        cf.BuildModel(customers, baskets),
		Catalogue: catalogue.Build(nil), // empty: expansion falls back to bare labels
	}
}

func TestRecommend_AlphaRegimes(t *testing.T) {
	e := alphaFixture()
	cart := []string{"Cart1"}

	heavy := recommend(t, e, &core.RecommendContext{CustomerName: "Heavy", Cart: cart})
	light := recommend(t, e, &core.RecommendContext{CustomerName: "Light", Cart: cart})

	if len(heavy) == 0 || heavy[0] != "Alpha" {
		t.Errorf("heavy user (alpha=0.7) top = %v, want Alpha first", heavy)
	}
	if len(light) == 0 || light[0] != "Beta" {
		t.Errorf("light user (alpha=0.3) top = %v, want Beta first", light)
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	e := fixtureEngine()
	rctx := &core.RecommendContext{CustomerName: "Alice", Cart: []string{"Paper"}, Category: "Binders"}

	first := recommend(t, e, rctx)
	second := recommend(t, e, rctx)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Recommend not idempotent: %v vs %v", first, second)
	}
}

func TestRecommend_NilRequest(t *testing.T) {
	e := fixtureEngine()
	if _, err := e.Recommend(context.Background(), nil); !core.IsInvalidInput(err) {
		t.Errorf("Recommend(nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestNormalize(t *testing.T) {
	got := normalize(map[string]float64{"a": 2, "b": 1, "c": 0.5})
	if got["a"] != 1.0 {
		t.Errorf("max after normalize = %v, want exactly 1.0", got["a"])
	}
	for k, v := range got {
		if v < 0 || v > 1 {
			t.Errorf("normalized[%s] = %v, out of [0,1]", k, v)
		}
	}

	// Empty family: no entries, no division by zero.
	if out := normalize(nil); len(out) != 0 {
		t.Errorf("normalize(nil) = %v, want empty", out)
	}
	// All-zero family resolves to 0.0, never NaN.
	if out := normalize(map[string]float64{"a": 0}); out["a"] != 0.0 {
		t.Errorf("normalize all-zero = %v, want 0.0", out["a"])
	}
}

func TestEngine_ProcessLabels(t *testing.T) {
	e := fixtureEngine()

	items, err := e.Process(context.Background(), &core.RecommendContext{CustomerName: "Alice"}, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) == 0 {
		t.Fatal("Process() returned no items")
	}
	if lbl, ok := items[0].Labels["source"]; !ok || lbl.Value != "cf" {
		t.Errorf("source label = %+v, want cf branch", items[0].Labels["source"])
	}
}
