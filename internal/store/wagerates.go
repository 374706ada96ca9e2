package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/laborcalc/internal/laborcost"
)

// WageRate is one row of a wage determination table.
type WageRate struct {
	Regime         laborcost.Regime
	Code           string
	Title          string
	BaseRate       float64
	FringeBenefits float64
}

// WageRates serves determination rates from the wage_rates table and
// implements laborcost.RateSource.
type WageRates struct {
	db *sql.DB
}

func NewWageRates(db *sql.DB) *WageRates {
	return &WageRates{db: db}
}

var _ laborcost.RateSource = (*WageRates)(nil)

func (s *WageRates) ServiceRate(ctx context.Context, code string) (laborcost.ServiceRate, bool, error) {
	r, err := s.get(ctx, laborcost.RegimeServiceContract, code)
	if errors.Is(err, ErrNotFound) {
		return laborcost.ServiceRate{}, false, nil
	}
	if err != nil {
		return laborcost.ServiceRate{}, false, err
	}
	return laborcost.ServiceRate{Code: r.Code, Title: r.Title, BaseRate: r.BaseRate}, true, nil
}

func (s *WageRates) ConstructionRate(ctx context.Context, code string) (laborcost.ConstructionRate, bool, error) {
	r, err := s.get(ctx, laborcost.RegimeDavisBacon, strings.ToUpper(code))
	if errors.Is(err, ErrNotFound) {
		return laborcost.ConstructionRate{}, false, nil
	}
	if err != nil {
		return laborcost.ConstructionRate{}, false, err
	}
	return laborcost.ConstructionRate{
		Code:           r.Code,
		Title:          r.Title,
		BaseRate:       r.BaseRate,
		FringeBenefits: r.FringeBenefits,
	}, true, nil
}

func (s *WageRates) get(ctx context.Context, regime laborcost.Regime, code string) (WageRate, error) {
	r := WageRate{Regime: regime}
	err := s.db.QueryRowContext(ctx, `
		SELECT code, title, base_rate, fringe_benefits
		FROM wage_rates
		WHERE regime = ? AND code = ?
	`, string(regime), code).Scan(&r.Code, &r.Title, &r.BaseRate, &r.FringeBenefits)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WageRate{}, fmt.Errorf("wage rate %s/%s: %w", regime, code, ErrNotFound)
		}
		return WageRate{}, fmt.Errorf("query wage rate: %w", err)
	}
	return r, nil
}

// List returns every rate ordered by regime and code.
func (s *WageRates) List(ctx context.Context) ([]WageRate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT regime, code, title, base_rate, fringe_benefits
		FROM wage_rates
		ORDER BY regime, code
	`)
	if err != nil {
		return nil, fmt.Errorf("query wage rates: %w", err)
	}
	defer rows.Close()

	rates := make([]WageRate, 0)
	for rows.Next() {
		var r WageRate
		var regime string
		if err := rows.Scan(&regime, &r.Code, &r.Title, &r.BaseRate, &r.FringeBenefits); err != nil {
			return nil, fmt.Errorf("scan wage rate: %w", err)
		}
		r.Regime = laborcost.Regime(regime)
		rates = append(rates, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wage rates: %w", err)
	}

	return rates, nil
}

// Update replaces the hourly figures of an existing rate.
func (s *WageRates) Update(ctx context.Context, regime laborcost.Regime, code string, baseRate, fringe float64) error {
	if regime == laborcost.RegimeDavisBacon {
		code = strings.ToUpper(code)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE wage_rates
		SET
			base_rate = ?,
			fringe_benefits = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE regime = ? AND code = ?
	`, baseRate, fringe, string(regime), code)
	if err != nil {
		return fmt.Errorf("update wage rate: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update wage rate: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("wage rate %s/%s: %w", regime, code, ErrNotFound)
	}
	return nil
}
