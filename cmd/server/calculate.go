package main

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Simplici0/laborcalc/internal/api"
	"github.com/Simplici0/laborcalc/internal/laborcost"
	"github.com/Simplici0/laborcalc/internal/store"
)

const (
	maxBodyBytes = 1 << 20
	dateLayout   = "2006-01-02"
)

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req api.CalculateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	in, err := toInput(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.calculator.Calculate(r.Context(), in)
	if err != nil {
		var verr *laborcost.ValidationError
		switch {
		case errors.As(err, &verr), errors.Is(err, laborcost.ErrUnknownOccupation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("calculate", "error", err)
			writeError(w, http.StatusInternalServerError, "calculation failed")
		}
		return
	}

	resp := toResult(result)
	s.record(r, req, resp, result)
	writeJSON(w, http.StatusOK, resp)
}

// record stores a calculation snapshot. A failed write is logged and does not
// fail the request.
func (s *server) record(r *http.Request, req api.CalculateRequest, resp api.Result, result laborcost.Result) {
	requestJSON, err := json.Marshal(req)
	if err != nil {
		s.logger.Warn("encode calculation request", "error", err)
		return
	}
	resultJSON, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("encode calculation result", "error", err)
		return
	}

	saved, err := s.calculations.Save(r.Context(), store.Calculation{
		Role:              strings.TrimSpace(req.Human.Role),
		Model:             req.AIAgent.Model,
		Regime:            string(result.Compensation.Regime),
		TotalCompensation: result.Compensation.Total,
		AICosts:           result.AICosts,
		Action:            result.Recommendation.Action,
		RequestJSON:       string(requestJSON),
		ResultJSON:        string(resultJSON),
	})
	if err != nil {
		s.logger.Warn("store calculation", "error", err)
		return
	}
	s.logger.Info("calculation stored", "id", saved.ID, "regime", saved.Regime, "action", saved.Action)
}

// toInput converts the wire request into calculator input. Count fields must
// be whole numbers and the contract date, when given, an ISO date.
func toInput(req api.CalculateRequest) (laborcost.Input, error) {
	h, a, m := req.Human, req.AIAgent, req.Metrics

	taskComplexity, err := wholeNumber("task_complexity", h.TaskComplexity)
	if err != nil {
		return laborcost.Input{}, err
	}
	yearsOfService, err := wholeNumber("years_of_service", h.YearsOfService)
	if err != nil {
		return laborcost.Input{}, err
	}
	totalQueries, err := wholeNumber("total_queries", a.TotalQueries)
	if err != nil {
		return laborcost.Input{}, err
	}
	queryComplexity, err := wholeNumber("query_complexity", a.QueryComplexity)
	if err != nil {
		return laborcost.Input{}, err
	}

	var contractDate time.Time
	if raw := strings.TrimSpace(h.ContractDate); raw != "" {
		contractDate, err = time.Parse(dateLayout, raw)
		if err != nil {
			return laborcost.Input{}, &laborcost.ValidationError{Field: "contract_date", Message: "must be a date (YYYY-MM-DD)"}
		}
	}

	return laborcost.Input{
		Employee: laborcost.Employee{
			Role:              h.Role,
			HoursWorked:       float64(h.HoursWorked),
			HourlyWage:        float64(h.HourlyWage),
			TaskComplexity:    taskComplexity,
			OccupationCode:    h.OccupationCode,
			IsServiceContract: h.IsServiceContract,
			YearsOfService:    yearsOfService,
			HasEO13706:        h.HasEO13706,
			ContractDate:      contractDate,
		},
		Agent: laborcost.Agent{
			Model:              a.Model,
			TotalQueries:       totalQueries,
			QueryComplexity:    queryComplexity,
			InfrastructureCost: float64(a.InfrastructureCost),
		},
		Metrics: laborcost.Metrics{
			CollaborationRatio: float64(m.CollaborationRatio),
			BusinessValue:      float64(m.BusinessValue),
		},
	}, nil
}

func wholeNumber(field string, n api.Number) (int, error) {
	v := float64(n)
	if v != math.Trunc(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		return 0, &laborcost.ValidationError{Field: field, Message: "must be a whole number"}
	}
	return int(v), nil
}

func toResult(r laborcost.Result) api.Result {
	c := r.Compensation
	wages := api.HumanWages{
		Occupation:        c.Occupation,
		BasePay:           c.BasePay,
		HealthWelfare:     c.HealthWelfare,
		VacationPay:       c.VacationPay,
		HolidayPay:        c.HolidayPay,
		FringeBenefits:    c.FringeBenefits,
		TotalCompensation: c.Total,
		MinimumWage:       c.MinimumWage,
	}
	if c.Benefits != nil {
		wages.Benefits = &api.Benefits{
			VacationWeeks:  c.Benefits.VacationWeeks,
			PaidHolidays:   c.Benefits.PaidHolidays,
			SickLeaveHours: c.Benefits.SickLeaveHours,
		}
	}

	return api.Result{
		HumanWages: wages,
		AICosts:    r.AICosts,
		WageRecommendations: api.Recommendation{
			Action:               r.Recommendation.Action,
			AdjustmentPercentage: r.Recommendation.AdjustmentPercentage,
			Reason:               r.Recommendation.Reason,
		},
		CollaborationMetrics: &api.CollaborationMetrics{
			TotalCost:        r.Collaboration.TotalCost,
			CostToValueRatio: r.Collaboration.CostToValueRatio,
		},
	}
}

// writeJSON encodes v before touching the response, so an unencodable value
// becomes a 500 instead of a success status with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(api.ErrorResponse{Error: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: message})
}
