package seed

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/laborcalc/internal/laborcost"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	for _, rate := range laborcost.DefaultServiceRates() {
		if err := ensureWageRate(tx, laborcost.RegimeServiceContract, rate.Code, rate.Title, rate.BaseRate, 0, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for _, rate := range laborcost.DefaultConstructionRates() {
		if err := ensureWageRate(tx, laborcost.RegimeDavisBacon, rate.Code, rate.Title, rate.BaseRate, rate.FringeBenefits, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, string(hash)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

// ensureWageRate inserts a determination row unless one exists. Existing rows
// are left alone so adjustments made through the admin API survive restarts.
func ensureWageRate(tx *sql.Tx, regime laborcost.Regime, code, title string, baseRate, fringe float64, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM wage_rates WHERE regime = ? AND code = ? LIMIT 1)`, string(regime), code).Scan(&exists); err != nil {
		return fmt.Errorf("check wage rate %s/%s existence: %w", regime, code, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO wage_rates (regime, code, title, base_rate, fringe_benefits)
		VALUES (?, ?, ?, ?, ?)
	`, string(regime), code, title, baseRate, fringe); err != nil {
		return fmt.Errorf("insert wage rate %s/%s: %w", regime, code, err)
	}
	stats.Inserts++
	return nil
}
