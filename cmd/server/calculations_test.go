package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Simplici0/laborcalc/internal/api"
	"github.com/Simplici0/laborcalc/internal/laborcost"
)

func TestCalculationsListAndDetail(t *testing.T) {
	_, h := newTestServer(t)
	session := login(t, h)

	for _, model := range []string{"GPT-4", "Claude"} {
		body := strings.Replace(calculateBody(generalHuman), `"model": "GPT-4"`, `"model": "`+model+`"`, 1)
		if rr := do(t, h, http.MethodPost, api.CalculatePath, body); rr.Code != http.StatusOK {
			t.Fatalf("calculate %s: expected 200, got %d: %s", model, rr.Code, rr.Body.String())
		}
	}

	rr := do(t, h, http.MethodGet, "/api/calculations", "", session)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	all := decode[[]calculationListItem](t, rr)
	if len(all) != 2 || all[0].Model != "Claude" || all[1].Model != "GPT-4" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	rr = do(t, h, http.MethodGet, "/api/calculations?q=claude", "", session)
	filtered := decode[[]calculationListItem](t, rr)
	if len(filtered) != 1 || filtered[0].Model != "Claude" {
		t.Fatalf("expected one Claude calculation, got %+v", filtered)
	}

	rr = do(t, h, http.MethodGet, "/api/calculations/"+all[1].ID, "", session)
	if rr.Code != http.StatusOK {
		t.Fatalf("detail: expected 200, got %d", rr.Code)
	}
	detail := decode[struct {
		ID      string               `json:"id"`
		Request api.CalculateRequest `json:"request"`
		Result  api.Result           `json:"result"`
	}](t, rr)
	if detail.ID != all[1].ID || detail.Request.AIAgent.TotalQueries != 5000 || detail.Result.HumanWages.TotalCompensation != 744 {
		t.Fatalf("unexpected detail snapshot: %+v", detail)
	}

	if rr := do(t, h, http.MethodGet, "/api/calculations/missing", "", session); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing calculation, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/calculations?limit=zero", "", session); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rr.Code)
	}
}

func TestWageRatesListAndUpdate(t *testing.T) {
	_, h := newTestServer(t)
	session := login(t, h)

	rr := do(t, h, http.MethodGet, "/api/wage-rates", "", session)
	rates := decode[[]wageRateResponse](t, rr)
	if len(rates) != 9 {
		t.Fatalf("expected 9 seeded rates, got %d", len(rates))
	}

	rr = do(t, h, http.MethodPut, "/api/wage-rates/dba/electrician", `{"base_rate": 55, "fringe_benefits": 18}`, session)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rr.Code, rr.Body.String())
	}

	human := `{"role": "Wiring", "hours_worked": 10, "hourly_wage": 20, "task_complexity": 2,
		"occupation_code": "ELECTRICIAN", "contract_date": "2025-01-01"}`
	rr = do(t, h, http.MethodPost, api.CalculatePath, calculateBody(human))
	if got := decode[api.Result](t, rr).HumanWages.TotalCompensation; got != 730 {
		t.Fatalf("expected updated rate to give 730, got %v", got)
	}

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"unknown regime", "/api/wage-rates/FLSA/x", `{"base_rate": 20}`, http.StatusBadRequest},
		{"missing base rate", "/api/wage-rates/SCA/14170", `{}`, http.StatusBadRequest},
		{"negative fringe", "/api/wage-rates/DBA/ELECTRICIAN", `{"base_rate": 50, "fringe_benefits": -1}`, http.StatusBadRequest},
		{"fringe on service rate", "/api/wage-rates/SCA/14170", `{"base_rate": 50, "fringe_benefits": 2}`, http.StatusBadRequest},
		{"unknown code", "/api/wage-rates/SCA/99999", `{"base_rate": 20}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := do(t, h, http.MethodPut, tt.path, tt.body, session); rr.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, rr.Code, rr.Body.String())
			}
		})
	}

	rr = do(t, h, http.MethodGet, "/api/wage-rates", "", session)
	for _, rate := range decode[[]wageRateResponse](t, rr) {
		if rate.Regime == laborcost.RegimeDavisBacon && rate.Code == "ELECTRICIAN" && (rate.BaseRate != 55 || rate.FringeBenefits != 18) {
			t.Fatalf("update not visible in listing: %+v", rate)
		}
	}
}
