package laborcost

import (
	"context"
	"strings"
	"time"
)

// Regime identifies a federal wage determination regime.
type Regime string

const (
	RegimeServiceContract Regime = "SCA"
	RegimeDavisBacon      Regime = "DBA"
	RegimeGeneral         Regime = "GENERAL"
)

const (
	// EO14026MinimumWage applies to contracts awarded on or after 2022-01-30.
	EO14026MinimumWage = 17.75
	// EO13658MinimumWage applies to older contracts.
	EO13658MinimumWage = 13.30

	FederalMinimumWage = 7.25
	StateMinimumWage   = 10.00
)

var eo14026Effective = time.Date(2022, time.January, 30, 0, 0, 0, 0, time.UTC)

// MinimumWage returns the executive-order minimum wage for a contract date.
func MinimumWage(contractDate time.Time) float64 {
	if !contractDate.Before(eo14026Effective) {
		return EO14026MinimumWage
	}
	return EO13658MinimumWage
}

// ServiceRate is one occupation of the Service Contract Act determination
// (WD 2015-5623 Rev 25).
type ServiceRate struct {
	Code     string
	Title    string
	BaseRate float64
}

// ConstructionRate is one classification of the Davis-Bacon determination
// (CA20250001).
type ConstructionRate struct {
	Code           string
	Title          string
	BaseRate       float64
	FringeBenefits float64
}

// TotalRate is the hourly base plus fringe.
func (r ConstructionRate) TotalRate() float64 {
	return r.BaseRate + r.FringeBenefits
}

// RateSource resolves determination rates. Lookups report ok=false for
// unknown codes.
type RateSource interface {
	ServiceRate(ctx context.Context, code string) (ServiceRate, bool, error)
	ConstructionRate(ctx context.Context, code string) (ConstructionRate, bool, error)
}

// DefaultServiceRates returns the built-in Service Contract Act table.
func DefaultServiceRates() []ServiceRate {
	return []ServiceRate{
		{Code: "01020", Title: "Administrative Assistant", BaseRate: 46.70},
		{Code: "14044", Title: "Computer Operator IV", BaseRate: 38.58},
		{Code: "14160", Title: "Personal Computer Support Technician", BaseRate: 38.58},
		{Code: "14170", Title: "System Support Specialist", BaseRate: 43.12},
		{Code: "30086", Title: "Engineering Technician VI", BaseRate: 47.80},
	}
}

// DefaultConstructionRates returns the built-in Davis-Bacon table.
func DefaultConstructionRates() []ConstructionRate {
	return []ConstructionRate{
		{Code: "ASBESTOS_WORKER", Title: "Asbestos Workers/Insulator", BaseRate: 49.58, FringeBenefits: 25.27},
		{Code: "ELECTRICIAN", Title: "Electrician", BaseRate: 52.85, FringeBenefits: 17.62},
		{Code: "ELEVATOR_MECHANIC", Title: "Elevator Mechanic", BaseRate: 66.63, FringeBenefits: 37.885},
		{Code: "LABORER_BASIC", Title: "Laborer Group 1", BaseRate: 37.68, FringeBenefits: 22.44},
	}
}

// StaticRates is an in-memory RateSource.
type StaticRates struct {
	service      map[string]ServiceRate
	construction map[string]ConstructionRate
}

// NewStaticRates indexes the given tables. Construction codes are matched
// case-insensitively.
func NewStaticRates(service []ServiceRate, construction []ConstructionRate) *StaticRates {
	s := &StaticRates{
		service:      make(map[string]ServiceRate, len(service)),
		construction: make(map[string]ConstructionRate, len(construction)),
	}
	for _, r := range service {
		s.service[r.Code] = r
	}
	for _, r := range construction {
		s.construction[strings.ToUpper(r.Code)] = r
	}
	return s
}

// DefaultRates returns a StaticRates over the built-in tables.
func DefaultRates() *StaticRates {
	return NewStaticRates(DefaultServiceRates(), DefaultConstructionRates())
}

func (s *StaticRates) ServiceRate(_ context.Context, code string) (ServiceRate, bool, error) {
	r, ok := s.service[code]
	return r, ok, nil
}

func (s *StaticRates) ConstructionRate(_ context.Context, code string) (ConstructionRate, bool, error) {
	r, ok := s.construction[strings.ToUpper(code)]
	return r, ok, nil
}
