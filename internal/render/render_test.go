package render

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Simplici0/laborcalc/internal/api"
)

func decode(t *testing.T, body string) *api.Result {
	t.Helper()
	var r api.Result
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return &r
}

func TestBlocksFromMinimalResult(t *testing.T) {
	r := decode(t, `{
		"human_wages": {"base_pay": 1000, "total_compensation": 1200},
		"ai_costs": 50,
		"wage_recommendations": {"action": "increase", "adjustment_percentage": 5, "reason": "below market"}
	}`)

	want := []Block{
		{Title: "Human Wages", Lines: []string{
			"Base Pay: $1000.00",
			"Health & Welfare: $0.00",
			"Vacation Pay: $0.00",
			"Holiday Pay: $0.00",
			"Total: $1200.00",
		}},
		{Title: "AI Costs", Lines: []string{"Total: $50.00"}},
		{Title: "Recommendations", Lines: []string{
			"Action: increase",
			"Adjustment: 5%",
			"Reason: below market",
		}},
	}
	if diff := cmp.Diff(want, Blocks(r)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocksWithServiceContractLines(t *testing.T) {
	r := decode(t, `{
		"human_wages": {"base_pay": 1724.8, "health_welfare": 214.4, "vacation_pay": 99.51, "holiday_pay": 72.97, "total_compensation": 2111.68},
		"ai_costs": 500,
		"wage_recommendations": {"action": "Decrease", "adjustment_percentage": -2.5, "reason": "automation"}
	}`)

	blocks := Blocks(r)
	if got := blocks[0].Lines[1]; got != "Health & Welfare: $214.40" {
		t.Fatalf("health line = %q", got)
	}
	if got := blocks[0].Lines[2]; got != "Vacation Pay: $99.51" {
		t.Fatalf("vacation line = %q", got)
	}
	if got := blocks[2].Lines[1]; got != "Adjustment: -2.5%" {
		t.Fatalf("adjustment line = %q", got)
	}
}

func TestBlocksNilResult(t *testing.T) {
	if blocks := Blocks(nil); blocks != nil {
		t.Fatalf("expected no blocks, got %+v", blocks)
	}
	if text := Text(nil); text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestText(t *testing.T) {
	r := &api.Result{
		HumanWages:          api.HumanWages{BasePay: 780, TotalCompensation: 780},
		AICosts:             500,
		WageRecommendations: api.Recommendation{Action: "Increase", AdjustmentPercentage: 15, Reason: "High complexity"},
	}

	want := `Human Wages
  Base Pay: $780.00
  Health & Welfare: $0.00
  Vacation Pay: $0.00
  Holiday Pay: $0.00
  Total: $780.00

AI Costs
  Total: $500.00

Recommendations
  Action: Increase
  Adjustment: 15%
  Reason: High complexity
`
	if diff := cmp.Diff(want, Text(r)); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
}
