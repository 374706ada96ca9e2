package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Simplici0/laborcalc/internal/api"
)

// FieldError reports a control whose value would not pass the input's own
// constraints (required, numeric, range).
type FieldError struct {
	Section Section
	Field   string
	Label   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Label, e.Message)
}

// Payload coerces the raw control values into the request body. It applies
// only per-control constraints; cross-field rules belong to the service.
func (a Aggregate) Payload() (api.CalculateRequest, error) {
	for _, f := range fields {
		if err := f.check(a); err != nil {
			return api.CalculateRequest{}, err
		}
	}

	h, ai, m := a.Human, a.AIAgent, a.Metrics
	return api.CalculateRequest{
		Human: api.HumanInput{
			Role:              h.Role,
			HoursWorked:       number(h.HoursWorked),
			HourlyWage:        number(h.HourlyWage),
			TaskComplexity:    api.Number(h.TaskComplexity),
			OccupationCode:    strings.TrimSpace(h.OccupationCode),
			IsServiceContract: h.IsServiceContract,
			YearsOfService:    number(h.YearsOfService),
			HasEO13706:        h.HasEO13706,
			ContractDate:      strings.TrimSpace(h.ContractDate),
		},
		AIAgent: api.AIAgentInput{
			Model:              ai.Model,
			TotalQueries:       number(ai.TotalQueries),
			QueryComplexity:    api.Number(ai.QueryComplexity),
			InfrastructureCost: number(ai.InfrastructureCost),
		},
		Metrics: api.MetricsInput{
			CollaborationRatio: number(m.CollaborationRatio),
			BusinessValue:      number(m.BusinessValue),
		},
	}, nil
}

// Check reports the first control constraint the aggregate violates.
func (a Aggregate) Check() error {
	_, err := a.Payload()
	return err
}

func (f Field) check(a Aggregate) error {
	fail := func(msg string) error {
		return &FieldError{Section: f.Section, Field: f.Name, Label: f.Label, Message: msg}
	}

	switch f.Kind {
	case KindText:
		if f.Required && strings.TrimSpace(f.get(a).(string)) == "" {
			return fail("required")
		}
	case KindNumber:
		raw := strings.TrimSpace(f.get(a).(string))
		if raw == "" {
			if f.Required {
				return fail("required")
			}
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fail("must be a number")
		}
		if f.HasRange && (v < f.Min || v > f.Max) {
			return fail(fmt.Sprintf("must be between %s and %s", trimFloat(f.Min), trimFloat(f.Max)))
		}
	case KindDate:
		raw := strings.TrimSpace(f.get(a).(string))
		if raw == "" {
			return nil
		}
		if _, err := time.Parse(DateLayout, raw); err != nil {
			return fail("must be a date (YYYY-MM-DD)")
		}
	}
	return nil
}

// number converts checked control text; blank optional fields become 0.
func number(raw string) api.Number {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return api.Number(v)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
