package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/laborcalc/internal/laborcost"
	"github.com/Simplici0/laborcalc/internal/store"
)

type calculationListItem struct {
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	Role              string    `json:"role"`
	Model             string    `json:"model"`
	Regime            string    `json:"regime"`
	TotalCompensation float64   `json:"total_compensation"`
	AICosts           float64   `json:"ai_costs"`
	Action            string    `json:"action"`
}

type calculationDetail struct {
	calculationListItem
	Request json.RawMessage `json:"request"`
	Result  json.RawMessage `json:"result"`
}

func listItem(c store.Calculation) calculationListItem {
	return calculationListItem{
		ID:                c.ID,
		CreatedAt:         c.CreatedAt,
		Role:              c.Role,
		Model:             c.Model,
		Regime:            c.Regime,
		TotalCompensation: c.TotalCompensation,
		AICosts:           c.AICosts,
		Action:            c.Action,
	}
}

func (s *server) handleCalculationsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	calculations, err := s.calculations.List(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("list calculations", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load calculations")
		return
	}

	items := make([]calculationListItem, 0, len(calculations))
	for _, c := range calculations {
		items = append(items, listItem(c))
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleCalculationDetail(w http.ResponseWriter, r *http.Request) {
	c, err := s.calculations.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "calculation not found")
		return
	}
	if err != nil {
		s.logger.Error("get calculation", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load calculation")
		return
	}

	writeJSON(w, http.StatusOK, calculationDetail{
		calculationListItem: listItem(c),
		Request:             json.RawMessage(c.RequestJSON),
		Result:              json.RawMessage(c.ResultJSON),
	})
}

type wageRateResponse struct {
	Regime         laborcost.Regime `json:"regime"`
	Code           string           `json:"code"`
	Title          string           `json:"title"`
	BaseRate       float64          `json:"base_rate"`
	FringeBenefits float64          `json:"fringe_benefits"`
}

type wageRateUpdate struct {
	BaseRate       *float64 `json:"base_rate"`
	FringeBenefits float64  `json:"fringe_benefits"`
}

func (s *server) handleWageRatesList(w http.ResponseWriter, r *http.Request) {
	rates, err := s.wageRates.List(r.Context())
	if err != nil {
		s.logger.Error("list wage rates", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load wage rates")
		return
	}

	out := make([]wageRateResponse, 0, len(rates))
	for _, rate := range rates {
		out = append(out, wageRateResponse(rate))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleWageRateUpdate(w http.ResponseWriter, r *http.Request) {
	regime := laborcost.Regime(strings.ToUpper(chi.URLParam(r, "regime")))
	if regime != laborcost.RegimeServiceContract && regime != laborcost.RegimeDavisBacon {
		writeError(w, http.StatusBadRequest, "regime must be SCA or DBA")
		return
	}

	var body wageRateUpdate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.BaseRate == nil || *body.BaseRate <= 0 {
		writeError(w, http.StatusBadRequest, "base_rate must be greater than 0")
		return
	}
	if body.FringeBenefits < 0 {
		writeError(w, http.StatusBadRequest, "fringe_benefits must be greater than or equal to 0")
		return
	}
	if regime == laborcost.RegimeServiceContract && body.FringeBenefits != 0 {
		writeError(w, http.StatusBadRequest, "fringe_benefits only applies to DBA rates")
		return
	}

	code := chi.URLParam(r, "code")
	err := s.wageRates.Update(r.Context(), regime, code, *body.BaseRate, body.FringeBenefits)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "wage rate not found")
		return
	}
	if err != nil {
		s.logger.Error("update wage rate", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update wage rate")
		return
	}

	s.logger.Info("wage rate updated", "regime", regime, "code", code, "base_rate", *body.BaseRate, "fringe_benefits", body.FringeBenefits)
	w.WriteHeader(http.StatusNoContent)
}
