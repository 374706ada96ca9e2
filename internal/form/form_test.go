package form

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/laborcalc/internal/api"
)

var today = time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC)

func filled(t *testing.T) Aggregate {
	t.Helper()
	a := New(today)
	steps := []struct {
		section Section
		field   string
		value   any
	}{
		{SectionHuman, "role", "AI Supervisor"},
		{SectionHuman, "hours_worked", "40"},
		{SectionHuman, "hourly_wage", "15.50"},
		{SectionAIAgent, "total_queries", "5000"},
		{SectionAIAgent, "infrastructure_cost", "150"},
		{SectionMetrics, "business_value", "20000"},
	}
	for _, s := range steps {
		var err error
		a, err = a.SetField(s.section, s.field, s.value)
		require.NoError(t, err)
	}
	return a
}

func TestNewDefaults(t *testing.T) {
	a := New(today)

	assert.Equal(t, 3, a.Human.TaskComplexity)
	assert.Equal(t, "0", a.Human.YearsOfService)
	assert.Equal(t, "2026-10-18", a.Human.ContractDate)
	assert.False(t, a.Human.IsServiceContract)
	assert.Equal(t, "GPT-4", a.AIAgent.Model)
	assert.Equal(t, 3, a.AIAgent.QueryComplexity)
	assert.Equal(t, "0.7", a.Metrics.CollaborationRatio)
	assert.Empty(t, a.Human.Role)
}

// sampleValue returns a value of the field's kind that differs from the
// default aggregate.
func sampleValue(f Field) any {
	switch f.Kind {
	case KindLevel:
		return 5
	case KindToggle:
		return true
	case KindChoice:
		return "Claude"
	case KindDate:
		return "2021-06-01"
	default:
		return "changed-" + f.Name
	}
}

func TestSetFieldChangesOnlyTargetLeaf(t *testing.T) {
	base := filled(t)

	for _, f := range Fields() {
		t.Run(string(f.Section)+"."+f.Name, func(t *testing.T) {
			value := sampleValue(f)
			next, err := base.SetField(f.Section, f.Name, value)
			require.NoError(t, err)

			for _, other := range Fields() {
				got, err := next.Value(other.Section, other.Name)
				require.NoError(t, err)
				if other.Section == f.Section && other.Name == f.Name {
					assert.Equal(t, value, got)
					continue
				}
				want, err := base.Value(other.Section, other.Name)
				require.NoError(t, err)
				assert.Equal(t, want, got, "sibling %s.%s changed", other.Section, other.Name)
			}
		})
	}
}

func TestSetFieldDoesNotMutateReceiver(t *testing.T) {
	base := filled(t)
	before := base

	_, err := base.SetField(SectionHuman, "role", "Someone else")
	require.NoError(t, err)

	assert.Equal(t, before, base)
}

func TestSetFieldIsIdempotent(t *testing.T) {
	base := filled(t)

	once, err := base.SetField(SectionMetrics, "collaboration_ratio", "0.9")
	require.NoError(t, err)
	twice, err := once.SetField(SectionMetrics, "collaboration_ratio", "0.9")
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestSetFieldRejectsUnknownFieldsAndKinds(t *testing.T) {
	a := New(today)

	_, err := a.SetField("payroll", "role", "x")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = a.SetField(SectionHuman, "salary", "x")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = a.SetField(SectionHuman, "task_complexity", "4")
	assert.ErrorIs(t, err, ErrValueKind)

	_, err = a.SetField(SectionHuman, "hours_worked", 40)
	assert.ErrorIs(t, err, ErrValueKind)

	_, err = a.SetField(SectionHuman, "has_eo13706", "true")
	assert.ErrorIs(t, err, ErrValueKind)
}

func TestPayloadCoercesNumbers(t *testing.T) {
	a := filled(t)
	a, err := a.SetField(SectionHuman, "occupation_code", " 14170 ")
	require.NoError(t, err)
	a, err = a.SetField(SectionHuman, "is_service_contract", true)
	require.NoError(t, err)

	req, err := a.Payload()
	require.NoError(t, err)

	assert.Equal(t, api.CalculateRequest{
		Human: api.HumanInput{
			Role:              "AI Supervisor",
			HoursWorked:       40,
			HourlyWage:        15.5,
			TaskComplexity:    3,
			OccupationCode:    "14170",
			IsServiceContract: true,
			YearsOfService:    0,
			ContractDate:      "2026-10-18",
		},
		AIAgent: api.AIAgentInput{
			Model:              "GPT-4",
			TotalQueries:       5000,
			QueryComplexity:    3,
			InfrastructureCost: 150,
		},
		Metrics: api.MetricsInput{
			CollaborationRatio: 0.7,
			BusinessValue:      20000,
		},
	}, req)
}

func TestPayloadEnforcesControlConstraints(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		field   string
		value   any
		message string
	}{
		{"required text", SectionHuman, "role", "   ", "required"},
		{"required number", SectionAIAgent, "total_queries", "", "required"},
		{"not a number", SectionHuman, "hourly_wage", "fifteen", "must be a number"},
		{"ratio above range", SectionMetrics, "collaboration_ratio", "1.5", "must be between 0 and 1"},
		{"negative years", SectionHuman, "years_of_service", "-2", "must be between 0 and 1000000000"},
		{"bad date", SectionHuman, "contract_date", "18/10/2026", "must be a date (YYYY-MM-DD)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := filled(t).SetField(tt.section, tt.field, tt.value)
			require.NoError(t, err)

			_, err = a.Payload()
			var ferr *FieldError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, tt.field, ferr.Field)
			assert.Equal(t, tt.message, ferr.Message)
		})
	}
}

func TestPayloadAllowsBlankOptionalFields(t *testing.T) {
	a, err := filled(t).SetField(SectionHuman, "years_of_service", "")
	require.NoError(t, err)
	a, err = a.SetField(SectionHuman, "contract_date", "")
	require.NoError(t, err)

	req, err := a.Payload()
	require.NoError(t, err)
	assert.Zero(t, req.Human.YearsOfService)
	assert.Empty(t, req.Human.ContractDate)
}

func TestLoadOverlaysDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	doc := `{
		"human": {"role": "Technician", "hours_worked": 38, "hourly_wage": "41.5", "task_complexity": 4, "is_service_contract": true},
		"ai_agent": {"model": "Claude"},
		"metrics": {"business_value": "1200"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	a, err := Load(path, New(today))
	require.NoError(t, err)

	assert.Equal(t, "Technician", a.Human.Role)
	assert.Equal(t, "38", a.Human.HoursWorked)
	assert.Equal(t, "41.5", a.Human.HourlyWage)
	assert.Equal(t, 4, a.Human.TaskComplexity)
	assert.True(t, a.Human.IsServiceContract)
	assert.Equal(t, "Claude", a.AIAgent.Model)
	assert.Equal(t, "1200", a.Metrics.BusinessValue)
	assert.Equal(t, "0.7", a.Metrics.CollaborationRatio, "untouched fields keep defaults")
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"human": {"salary": 1}}`), 0o600))

	_, err := Load(path, New(today))
	assert.ErrorIs(t, err, ErrUnknownField)
}
