package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/laborcalc/internal/api"
)

const inputDoc = `{
	"human": {"role": "Analyst", "hours_worked": 40, "hourly_wage": 25},
	"ai_agent": {"total_queries": 1000, "infrastructure_cost": 20},
	"metrics": {"business_value": 5000}
}`

func writeInput(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestNoTUIPrintsResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.CalculatePath, r.URL.Path)
		_, _ = io.WriteString(w, `{
			"human_wages": {"base_pay": 1000, "health_welfare": 214.4, "total_compensation": 1214.4},
			"ai_costs": 80,
			"wage_recommendations": {"action": "Increase", "adjustment_percentage": 10, "reason": "Effective AI collaboration with moderate complexity"}
		}`)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"--no-tui",
		"--endpoint", srv.URL + api.CalculatePath,
		"--input", writeInput(t, inputDoc),
	}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "Human Wages\n")
	assert.Contains(t, out, "  Health & Welfare: $214.40\n")
	assert.Contains(t, out, "  Total: $1214.40\n")
	assert.Contains(t, out, "  Adjustment: 10%\n")
}

func TestNoTUIReportsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"hours_worked must be greater than 0"}`)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-tui", "--endpoint", srv.URL, "--input", writeInput(t, inputDoc)}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "error: hours_worked must be greater than 0\n", stderr.String())
}

func TestNoTUIIncompleteFormIsNotSent(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-tui", "--endpoint", srv.URL}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.False(t, called)
	assert.Equal(t, "error: Role: required\n", stderr.String())
}

func TestBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"--log-level", "loud"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "invalid level")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"--no-such-flag"}, &stdout, &stderr))
}

func TestMissingInputFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-tui", "--input", filepath.Join(t.TempDir(), "absent.json")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr.String())
}

func TestProgramExit(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name   string
		ctx    context.Context
		err    error
		code   int
		stderr string
	}{
		{name: "interrupted", ctx: cancelled, err: tea.ErrProgramKilled, code: 0},
		{name: "interrupted wrapped", ctx: cancelled, err: fmt.Errorf("%w: %w", tea.ErrProgramKilled, context.Canceled), code: 0},
		{name: "killed without interrupt", ctx: context.Background(), err: tea.ErrProgramKilled, code: 1, stderr: tea.ErrProgramKilled.Error()},
		{name: "terminal failure", ctx: cancelled, err: errors.New("open /dev/tty: no such device"), code: 1, stderr: "no such device"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			assert.Equal(t, tt.code, programExit(tt.ctx, tt.err, &stderr))
			if tt.stderr == "" {
				assert.Empty(t, stderr.String())
			} else {
				assert.Contains(t, stderr.String(), tt.stderr)
			}
		})
	}
}
