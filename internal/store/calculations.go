// Package store persists calculation snapshots and wage determination rates
// in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

const timeLayout = "2006-01-02 15:04:05"

// Calculation is a stored snapshot of one calculation request and its result.
type Calculation struct {
	ID                string
	CreatedAt         time.Time
	Role              string
	Model             string
	Regime            string
	TotalCompensation float64
	AICosts           float64
	Action            string
	RequestJSON       string
	ResultJSON        string
}

// Calculations reads and writes calculation snapshots.
type Calculations struct {
	db  *sql.DB
	now func() time.Time
}

func NewCalculations(db *sql.DB) *Calculations {
	return &Calculations{db: db, now: time.Now}
}

// Save assigns an id and timestamp when missing and inserts the snapshot.
func (s *Calculations) Save(ctx context.Context, c Calculation) (Calculation, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	c.CreatedAt = c.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (
			id, created_at, role, model, regime,
			total_compensation, ai_costs, action,
			request_json, result_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID,
		c.CreatedAt.Format(timeLayout),
		c.Role,
		c.Model,
		c.Regime,
		c.TotalCompensation,
		c.AICosts,
		c.Action,
		c.RequestJSON,
		c.ResultJSON,
	)
	if err != nil {
		return Calculation{}, fmt.Errorf("insert calculation: %w", err)
	}
	return c, nil
}

// likeEscaper makes LIKE wildcards in a search query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// List returns the most recent calculations, newest first. A non-empty query
// filters by role or model substring.
func (s *Calculations) List(ctx context.Context, query string, limit int) ([]Calculation, error) {
	if limit <= 0 {
		limit = 50
	}
	search := "%" + likeEscaper.Replace(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, role, model, regime, total_compensation, ai_costs, action
		FROM calculations
		WHERE (? = '' OR role LIKE ? ESCAPE '\' OR model LIKE ? ESCAPE '\')
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, query, search, search, limit)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	calculations := make([]Calculation, 0)
	for rows.Next() {
		var c Calculation
		var createdAt string
		if err := rows.Scan(&c.ID, &createdAt, &c.Role, &c.Model, &c.Regime, &c.TotalCompensation, &c.AICosts, &c.Action); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		if c.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse calculation timestamp: %w", err)
		}
		calculations = append(calculations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}

	return calculations, nil
}

// Get returns one calculation including its request and result snapshots.
func (s *Calculations) Get(ctx context.Context, id string) (Calculation, error) {
	var c Calculation
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, role, model, regime, total_compensation, ai_costs, action, request_json, result_json
		FROM calculations
		WHERE id = ?
	`, id).Scan(
		&c.ID,
		&createdAt,
		&c.Role,
		&c.Model,
		&c.Regime,
		&c.TotalCompensation,
		&c.AICosts,
		&c.Action,
		&c.RequestJSON,
		&c.ResultJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Calculation{}, fmt.Errorf("calculation %s: %w", id, ErrNotFound)
		}
		return Calculation{}, fmt.Errorf("query calculation: %w", err)
	}
	if c.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Calculation{}, fmt.Errorf("parse calculation timestamp: %w", err)
	}
	return c, nil
}
