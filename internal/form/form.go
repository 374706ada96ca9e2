// Package form holds the calculator's input state: three sections of raw
// control values that are only coerced to numbers when a payload is built.
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Section names one group of the aggregate.
type Section string

const (
	SectionHuman   Section = "human"
	SectionAIAgent Section = "ai_agent"
	SectionMetrics Section = "metrics"
)

// DateLayout is the calendar date format of contract_date.
const DateLayout = "2006-01-02"

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrValueKind    = errors.New("value does not match field kind")
)

// Human holds the human employee controls. Numeric text fields keep what the
// user typed.
type Human struct {
	Role              string `json:"role"`
	HoursWorked       string `json:"hours_worked"`
	HourlyWage        string `json:"hourly_wage"`
	TaskComplexity    int    `json:"task_complexity"`
	OccupationCode    string `json:"occupation_code"`
	IsServiceContract bool   `json:"is_service_contract"`
	YearsOfService    string `json:"years_of_service"`
	HasEO13706        bool   `json:"has_eo13706"`
	ContractDate      string `json:"contract_date"`
}

// AIAgent holds the AI agent controls.
type AIAgent struct {
	Model              string `json:"model"`
	TotalQueries       string `json:"total_queries"`
	QueryComplexity    int    `json:"query_complexity"`
	InfrastructureCost string `json:"infrastructure_cost"`
}

// Metrics holds the collaboration controls.
type Metrics struct {
	CollaborationRatio string `json:"collaboration_ratio"`
	BusinessValue      string `json:"business_value"`
}

// Aggregate is the whole form. It is a plain value: SetField returns a
// modified copy and never touches the receiver.
type Aggregate struct {
	Human   Human   `json:"human"`
	AIAgent AIAgent `json:"ai_agent"`
	Metrics Metrics `json:"metrics"`
}

// New returns the aggregate with its initial control values.
func New(today time.Time) Aggregate {
	return Aggregate{
		Human: Human{
			TaskComplexity: 3,
			YearsOfService: "0",
			ContractDate:   today.Format(DateLayout),
		},
		AIAgent: AIAgent{
			Model:           "GPT-4",
			QueryComplexity: 3,
		},
		Metrics: Metrics{
			CollaborationRatio: "0.7",
		},
	}
}

// SetField returns a copy of a with one leaf replaced. The value must have
// the Go type the field's control produces: string for text, number, choice
// and date fields, int for levels, bool for toggles.
func (a Aggregate) SetField(section Section, field string, value any) (Aggregate, error) {
	f, ok := lookup(section, field)
	if !ok {
		return a, fmt.Errorf("%s.%s: %w", section, field, ErrUnknownField)
	}
	if !f.Kind.accepts(value) {
		return a, fmt.Errorf("%s.%s got %T: %w", section, field, value, ErrValueKind)
	}
	f.set(&a, value)
	return a, nil
}

// Value returns the raw value of one leaf.
func (a Aggregate) Value(section Section, field string) (any, error) {
	f, ok := lookup(section, field)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", section, field, ErrUnknownField)
	}
	return f.get(a), nil
}

// Load overlays the JSON document at path onto a. Sections and fields absent
// from the document keep their current values.
func Load(path string, a Aggregate) (Aggregate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return a, fmt.Errorf("read form input: %w", err)
	}
	var raw map[Section]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return a, fmt.Errorf("decode form input: %w", err)
	}

	for section, fields := range raw {
		for name, msg := range fields {
			f, ok := lookup(section, name)
			if !ok {
				return a, fmt.Errorf("%s.%s: %w", section, name, ErrUnknownField)
			}
			value, err := f.Kind.decode(msg)
			if err != nil {
				return a, fmt.Errorf("%s.%s: %w", section, name, err)
			}
			if a, err = a.SetField(section, name, value); err != nil {
				return a, err
			}
		}
	}
	return a, nil
}

func (k Kind) decode(msg json.RawMessage) (any, error) {
	switch k {
	case KindLevel:
		var v int
		err := json.Unmarshal(msg, &v)
		return v, err
	case KindToggle:
		var v bool
		err := json.Unmarshal(msg, &v)
		return v, err
	case KindNumber:
		// Numbers may be written either way in a file; the control holds text.
		var n json.Number
		if err := json.Unmarshal(msg, &n); err == nil {
			return n.String(), nil
		}
		var s string
		err := json.Unmarshal(msg, &s)
		return strings.TrimSpace(s), err
	default:
		var v string
		err := json.Unmarshal(msg, &v)
		return v, err
	}
}
