// Package laborcost computes human compensation under federal wage
// determinations, AI agent operating costs, and the resulting wage
// recommendation.
package laborcost

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	aiBaseCostPerQuery = 0.01
	humanTaskWeight    = 0.7
	aiTaskWeight       = 0.3
)

// Models lists the AI models the calculator accepts.
var Models = []string{"GPT-4", "GPT-3.5", "Claude"}

// ErrUnknownOccupation is returned when an occupation code is not part of the
// selected wage determination.
var ErrUnknownOccupation = errors.New("occupation not found in wage determination")

// ValidationError reports an input field outside its allowed range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Employee describes the human side of the work.
type Employee struct {
	Role              string
	HoursWorked       float64
	HourlyWage        float64
	TaskComplexity    int
	OccupationCode    string
	IsServiceContract bool
	YearsOfService    int
	HasEO13706        bool
	ContractDate      time.Time
}

// Agent describes AI agent usage.
type Agent struct {
	Model              string
	TotalQueries       int
	QueryComplexity    int
	InfrastructureCost float64
}

// Metrics describes how the human and the agent collaborate.
type Metrics struct {
	CollaborationRatio float64
	BusinessValue      float64
}

// Input groups all calculation inputs.
type Input struct {
	Employee Employee
	Agent    Agent
	Metrics  Metrics
}

// Collaboration is the weighted cost of the combined work.
type Collaboration struct {
	TotalCost        float64
	CostToValueRatio float64
}

// Recommendation is the suggested wage adjustment.
type Recommendation struct {
	Action               string
	AdjustmentPercentage float64
	Reason               string
}

// Result groups the full calculation output.
type Result struct {
	Compensation   Compensation
	AICosts        float64
	Collaboration  Collaboration
	Recommendation Recommendation
}

// Calculator runs calculations against a RateSource.
type Calculator struct {
	rates RateSource
	now   func() time.Time
}

// NewCalculator returns a Calculator. A nil source uses the built-in tables.
func NewCalculator(rates RateSource) *Calculator {
	if rates == nil {
		rates = DefaultRates()
	}
	return &Calculator{rates: rates, now: time.Now}
}

// Validate checks input ranges.
func Validate(in Input) error {
	e, a, m := in.Employee, in.Agent, in.Metrics
	for _, v := range []struct {
		field string
		value float64
	}{
		{"hours_worked", e.HoursWorked},
		{"hourly_wage", e.HourlyWage},
		{"infrastructure_cost", a.InfrastructureCost},
		{"collaboration_ratio", m.CollaborationRatio},
		{"business_value", m.BusinessValue},
	} {
		if !finite(v.value) {
			return &ValidationError{Field: v.field, Message: "must be a finite number"}
		}
	}

	switch {
	case strings.TrimSpace(e.Role) == "":
		return &ValidationError{Field: "role", Message: "is required"}
	case e.HoursWorked <= 0:
		return &ValidationError{Field: "hours_worked", Message: "must be greater than 0"}
	case e.HourlyWage <= 0:
		return &ValidationError{Field: "hourly_wage", Message: "must be greater than 0"}
	case e.TaskComplexity < 1 || e.TaskComplexity > 5:
		return &ValidationError{Field: "task_complexity", Message: "must be between 1 and 5"}
	case e.YearsOfService < 0:
		return &ValidationError{Field: "years_of_service", Message: "must be greater than or equal to 0"}
	case !knownModel(a.Model):
		return &ValidationError{Field: "model", Message: "must be one of " + strings.Join(Models, ", ")}
	case a.TotalQueries <= 0:
		return &ValidationError{Field: "total_queries", Message: "must be greater than 0"}
	case a.QueryComplexity < 1 || a.QueryComplexity > 5:
		return &ValidationError{Field: "query_complexity", Message: "must be between 1 and 5"}
	case a.InfrastructureCost < 0:
		return &ValidationError{Field: "infrastructure_cost", Message: "must be greater than or equal to 0"}
	case m.CollaborationRatio < 0 || m.CollaborationRatio > 1:
		return &ValidationError{Field: "collaboration_ratio", Message: "must be between 0 and 1"}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func knownModel(model string) bool {
	for _, m := range Models {
		if m == model {
			return true
		}
	}
	return false
}

// Calculate validates the input and computes every output figure.
func (c *Calculator) Calculate(ctx context.Context, in Input) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}

	comp, err := c.Compensation(ctx, in.Employee)
	if err != nil {
		return Result{}, err
	}

	aiCosts := AICosts(in.Agent)
	collaboration := CollaborationCost(comp.Total, aiCosts, in.Metrics)

	// Finite inputs can still overflow once multiplied out.
	switch {
	case !finite(comp.Total):
		return Result{}, &ValidationError{Field: "human", Message: "compensation is too large to compute"}
	case !finite(aiCosts):
		return Result{}, &ValidationError{Field: "ai_agent", Message: "costs are too large to compute"}
	case !finite(collaboration.TotalCost) || !finite(collaboration.CostToValueRatio):
		return Result{}, &ValidationError{Field: "metrics", Message: "collaboration cost is too large to compute"}
	}

	return Result{
		Compensation:   comp,
		AICosts:        round2(aiCosts),
		Collaboration:  collaboration,
		Recommendation: Recommend(in.Employee, in.Metrics),
	}, nil
}

// Compensation selects the wage determination for the employee and computes
// pay under it. Without an occupation code the general minimum-wage rules
// apply.
func (c *Calculator) Compensation(ctx context.Context, e Employee) (Compensation, error) {
	code := strings.TrimSpace(e.OccupationCode)
	if code == "" {
		return generalCompensation(e.HourlyWage, e.HoursWorked, e.TaskComplexity), nil
	}

	contractDate := e.ContractDate
	if contractDate.IsZero() {
		contractDate = c.now()
	}
	minimum := MinimumWage(contractDate)

	if e.IsServiceContract {
		rate, ok, err := c.rates.ServiceRate(ctx, code)
		if err != nil {
			return Compensation{}, fmt.Errorf("lookup service contract rate: %w", err)
		}
		if !ok {
			return Compensation{}, fmt.Errorf("occupation code %s: %w", code, ErrUnknownOccupation)
		}
		return serviceContractCompensation(rate, e.HoursWorked, e.YearsOfService, e.HasEO13706, minimum), nil
	}

	rate, ok, err := c.rates.ConstructionRate(ctx, code)
	if err != nil {
		return Compensation{}, fmt.Errorf("lookup davis-bacon rate: %w", err)
	}
	if !ok {
		return Compensation{}, fmt.Errorf("occupation %s: %w", code, ErrUnknownOccupation)
	}
	return davisBaconCompensation(rate, e.HoursWorked, minimum), nil
}

// AICosts is the per-query base cost plus complexity-weighted infrastructure.
func AICosts(a Agent) float64 {
	return aiBaseCostPerQuery*float64(a.TotalQueries) + a.InfrastructureCost*float64(a.QueryComplexity)
}

// CollaborationCost weighs human and AI cost and relates it to business value.
func CollaborationCost(humanCost, aiCost float64, m Metrics) Collaboration {
	total := humanTaskWeight*humanCost + aiTaskWeight*aiCost
	ratio := 0.0
	if m.BusinessValue > 0 {
		ratio = total / m.BusinessValue
	}
	return Collaboration{
		TotalCost:        round2(total),
		CostToValueRatio: round4(ratio),
	}
}

// Recommend derives a wage adjustment from task complexity and AI
// collaboration. Rules are checked in order; the first match wins.
func Recommend(e Employee, m Metrics) Recommendation {
	switch {
	case e.TaskComplexity >= 4 && m.BusinessValue > 0:
		return Recommendation{
			Action:               "Increase",
			AdjustmentPercentage: 15,
			Reason:               "High complexity tasks with proven business value",
		}
	case m.CollaborationRatio > 0.7 && e.TaskComplexity >= 3:
		return Recommendation{
			Action:               "Increase",
			AdjustmentPercentage: 10,
			Reason:               "Effective AI collaboration with moderate complexity",
		}
	case e.TaskComplexity <= 2 && m.CollaborationRatio > 0.8:
		return Recommendation{
			Action:               "Decrease",
			AdjustmentPercentage: -5,
			Reason:               "Reduced complexity due to AI automation",
		}
	default:
		return Recommendation{
			Action:               "Maintain",
			AdjustmentPercentage: 0,
			Reason:               "Current wage level appropriate",
		}
	}
}
