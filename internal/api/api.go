// Package api holds the JSON shapes exchanged between the calculator form and
// the calculation service.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CalculatePath is the route the calculation service serves.
const CalculatePath = "/api/calculate"

// Number is a JSON number that also accepts numeric strings, since form
// controls hand numbers over as text.
type Number float64

// UnmarshalJSON accepts 12.5, "12.5" and "" (zero). NaN and infinities are
// rejected.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*n = 0
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid number %q", raw)
		}
		*n = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// CalculateRequest is the three-section aggregate submitted by the form.
type CalculateRequest struct {
	Human   HumanInput   `json:"human"`
	AIAgent AIAgentInput `json:"ai_agent"`
	Metrics MetricsInput `json:"metrics"`
}

type HumanInput struct {
	Role              string `json:"role"`
	HoursWorked       Number `json:"hours_worked"`
	HourlyWage        Number `json:"hourly_wage"`
	TaskComplexity    Number `json:"task_complexity"`
	OccupationCode    string `json:"occupation_code"`
	IsServiceContract bool   `json:"is_service_contract"`
	YearsOfService    Number `json:"years_of_service"`
	HasEO13706        bool   `json:"has_eo13706"`
	ContractDate      string `json:"contract_date"`
}

type AIAgentInput struct {
	Model              string `json:"model"`
	TotalQueries       Number `json:"total_queries"`
	QueryComplexity    Number `json:"query_complexity"`
	InfrastructureCost Number `json:"infrastructure_cost"`
}

type MetricsInput struct {
	CollaborationRatio Number `json:"collaboration_ratio"`
	BusinessValue      Number `json:"business_value"`
}

// Result is the breakdown returned by a successful calculation.
type Result struct {
	HumanWages           HumanWages            `json:"human_wages"`
	AICosts              float64               `json:"ai_costs"`
	WageRecommendations  Recommendation        `json:"wage_recommendations"`
	CollaborationMetrics *CollaborationMetrics `json:"collaboration_metrics,omitempty"`
}

// HumanWages carries the compensation lines. The pointer fields are only
// present for determinations that produce them.
type HumanWages struct {
	Occupation        string    `json:"occupation,omitempty"`
	BasePay           float64   `json:"base_pay"`
	HealthWelfare     *float64  `json:"health_welfare,omitempty"`
	VacationPay       *float64  `json:"vacation_pay,omitempty"`
	HolidayPay        *float64  `json:"holiday_pay,omitempty"`
	FringeBenefits    *float64  `json:"fringe_benefits,omitempty"`
	TotalCompensation float64   `json:"total_compensation"`
	MinimumWage       *float64  `json:"minimum_wage,omitempty"`
	Benefits          *Benefits `json:"benefits,omitempty"`
}

type Benefits struct {
	VacationWeeks  int `json:"vacation_weeks"`
	PaidHolidays   int `json:"paid_holidays"`
	SickLeaveHours int `json:"sick_leave_hours"`
}

type Recommendation struct {
	Action               string  `json:"action"`
	AdjustmentPercentage float64 `json:"adjustment_percentage"`
	Reason               string  `json:"reason"`
}

type CollaborationMetrics struct {
	TotalCost        float64 `json:"total_cost"`
	CostToValueRatio float64 `json:"cost_to_value_ratio"`
}

// ErrorResponse is the body of every non-success response.
type ErrorResponse struct {
	Error string `json:"error"`
}
