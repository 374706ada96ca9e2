package form

// Kind is the type of control behind a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindLevel
	KindToggle
	KindChoice
	KindDate
)

func (k Kind) accepts(value any) bool {
	switch value.(type) {
	case string:
		return k == KindText || k == KindNumber || k == KindChoice || k == KindDate
	case int:
		return k == KindLevel
	case bool:
		return k == KindToggle
	}
	return false
}

// Option is one entry of a select control.
type Option struct {
	Label string
	Value any
}

// Field describes one control of the form.
type Field struct {
	Section  Section
	Name     string
	Label    string
	Kind     Kind
	Required bool
	Help     string
	Options  []Option
	// Min and Max bound numeric input when HasRange is set.
	HasRange bool
	Min, Max float64

	get func(Aggregate) any
	set func(*Aggregate, any)
}

var levelOptions = []Option{
	{Label: "1", Value: 1},
	{Label: "2", Value: 2},
	{Label: "3", Value: 3},
	{Label: "4", Value: 4},
	{Label: "5", Value: 5},
}

// ModelOptions lists the selectable AI models.
var ModelOptions = []Option{
	{Label: "GPT-4", Value: "GPT-4"},
	{Label: "GPT-3.5", Value: "GPT-3.5"},
	{Label: "Claude", Value: "Claude"},
}

var fields = []Field{
	{
		Section: SectionHuman, Name: "role", Label: "Role", Kind: KindText, Required: true,
		get: func(a Aggregate) any { return a.Human.Role },
		set: func(a *Aggregate, v any) { a.Human.Role = v.(string) },
	},
	{
		Section: SectionHuman, Name: "hours_worked", Label: "Hours Worked", Kind: KindNumber, Required: true,
		get: func(a Aggregate) any { return a.Human.HoursWorked },
		set: func(a *Aggregate, v any) { a.Human.HoursWorked = v.(string) },
	},
	{
		Section: SectionHuman, Name: "hourly_wage", Label: "Hourly Wage", Kind: KindNumber, Required: true,
		get: func(a Aggregate) any { return a.Human.HourlyWage },
		set: func(a *Aggregate, v any) { a.Human.HourlyWage = v.(string) },
	},
	{
		Section: SectionHuman, Name: "task_complexity", Label: "Task Complexity", Kind: KindLevel, Options: levelOptions,
		get: func(a Aggregate) any { return a.Human.TaskComplexity },
		set: func(a *Aggregate, v any) { a.Human.TaskComplexity = v.(int) },
	},
	{
		Section: SectionHuman, Name: "occupation_code", Label: "Occupation Code", Kind: KindText,
		Help: "Enter SCA or Davis-Bacon occupation code",
		get:  func(a Aggregate) any { return a.Human.OccupationCode },
		set:  func(a *Aggregate, v any) { a.Human.OccupationCode = v.(string) },
	},
	{
		Section: SectionHuman, Name: "is_service_contract", Label: "Contract Type", Kind: KindToggle,
		Options: []Option{{Label: "Davis-Bacon Act", Value: false}, {Label: "Service Contract Act", Value: true}},
		get:     func(a Aggregate) any { return a.Human.IsServiceContract },
		set:     func(a *Aggregate, v any) { a.Human.IsServiceContract = v.(bool) },
	},
	{
		Section: SectionHuman, Name: "years_of_service", Label: "Years of Service", Kind: KindNumber,
		HasRange: true, Min: 0, Max: 1e9,
		get: func(a Aggregate) any { return a.Human.YearsOfService },
		set: func(a *Aggregate, v any) { a.Human.YearsOfService = v.(string) },
	},
	{
		Section: SectionHuman, Name: "has_eo13706", Label: "EO 13706 Paid Sick Leave", Kind: KindToggle,
		Options: []Option{{Label: "No", Value: false}, {Label: "Yes", Value: true}},
		get:     func(a Aggregate) any { return a.Human.HasEO13706 },
		set:     func(a *Aggregate, v any) { a.Human.HasEO13706 = v.(bool) },
	},
	{
		Section: SectionHuman, Name: "contract_date", Label: "Contract Date", Kind: KindDate,
		Help: "YYYY-MM-DD",
		get:  func(a Aggregate) any { return a.Human.ContractDate },
		set:  func(a *Aggregate, v any) { a.Human.ContractDate = v.(string) },
	},
	{
		Section: SectionAIAgent, Name: "model", Label: "AI Model", Kind: KindChoice, Options: ModelOptions,
		get: func(a Aggregate) any { return a.AIAgent.Model },
		set: func(a *Aggregate, v any) { a.AIAgent.Model = v.(string) },
	},
	{
		Section: SectionAIAgent, Name: "total_queries", Label: "Total Queries", Kind: KindNumber, Required: true,
		get: func(a Aggregate) any { return a.AIAgent.TotalQueries },
		set: func(a *Aggregate, v any) { a.AIAgent.TotalQueries = v.(string) },
	},
	{
		Section: SectionAIAgent, Name: "query_complexity", Label: "Query Complexity", Kind: KindLevel, Options: levelOptions,
		get: func(a Aggregate) any { return a.AIAgent.QueryComplexity },
		set: func(a *Aggregate, v any) { a.AIAgent.QueryComplexity = v.(int) },
	},
	{
		Section: SectionAIAgent, Name: "infrastructure_cost", Label: "Infrastructure Cost", Kind: KindNumber, Required: true,
		get: func(a Aggregate) any { return a.AIAgent.InfrastructureCost },
		set: func(a *Aggregate, v any) { a.AIAgent.InfrastructureCost = v.(string) },
	},
	{
		Section: SectionMetrics, Name: "collaboration_ratio", Label: "Collaboration Ratio", Kind: KindNumber, Required: true,
		Help: "Value between 0 and 1", HasRange: true, Min: 0, Max: 1,
		get: func(a Aggregate) any { return a.Metrics.CollaborationRatio },
		set: func(a *Aggregate, v any) { a.Metrics.CollaborationRatio = v.(string) },
	},
	{
		Section: SectionMetrics, Name: "business_value", Label: "Business Value", Kind: KindNumber, Required: true,
		get: func(a Aggregate) any { return a.Metrics.BusinessValue },
		set: func(a *Aggregate, v any) { a.Metrics.BusinessValue = v.(string) },
	},
}

// Fields returns the form's controls in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// SectionTitle is the heading shown above a section.
func SectionTitle(s Section) string {
	switch s {
	case SectionHuman:
		return "Human Employee Information"
	case SectionAIAgent:
		return "AI Agent Information"
	case SectionMetrics:
		return "Collaboration Metrics"
	}
	return string(s)
}

func lookup(section Section, name string) (Field, bool) {
	for _, f := range fields {
		if f.Section == section && f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
