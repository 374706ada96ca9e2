// Command labor-form is the terminal client of the digital labor calculator.
// It shows the form, posts it to the calculation service and renders the
// result. With --input and --no-tui it submits a saved form non-interactively.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/Simplici0/laborcalc/internal/form"
	"github.com/Simplici0/laborcalc/internal/logging"
	"github.com/Simplici0/laborcalc/internal/render"
	"github.com/Simplici0/laborcalc/internal/submit"
	"github.com/Simplici0/laborcalc/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("labor-form", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	endpoint := flags.String("endpoint", submit.Endpoint, "calculation service URL")
	input := flags.String("input", "", "JSON file with initial form values")
	noTUI := flags.Bool("no-tui", false, "submit the form once and print the result")
	logOutput := flags.String("log-output", "", "file to append JSON logs to (default: discard)")
	logLevel := flags.String("log-level", "info", "log level: debug, info, warn, error")
	timeout := flags.Duration("timeout", 30*time.Second, "request timeout in --no-tui mode")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger, closer, err := logging.OpenFile(*logOutput, level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closer.Close()

	agg := form.New(time.Now())
	if *input != "" {
		agg, err = form.Load(*input, agg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctrl := submit.New(submit.WithEndpoint(*endpoint), submit.WithLogger(logger))

	if *noTUI {
		ctx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		return submitOnce(ctx, ctrl, agg, stdout, stderr)
	}

	program := tea.NewProgram(tui.New(ctx, ctrl, agg, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return programExit(ctx, err, stderr)
	}
	// The alternate screen is gone once the program exits; repeat the last
	// result on the normal screen.
	if state := ctrl.State(); state.Result != nil {
		fmt.Fprint(stdout, render.Text(state.Result))
	}
	return 0
}

// programExit maps the error of an ended program to an exit code. An
// interrupt kills the program through its context, which is a normal quit.
func programExit(ctx context.Context, err error, stderr io.Writer) int {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return 0
	}
	fmt.Fprintln(stderr, err)
	return 1
}

func submitOnce(ctx context.Context, ctrl *submit.Controller, agg form.Aggregate, stdout, stderr io.Writer) int {
	state := ctrl.Submit(ctx, agg)
	if state.Status == submit.StatusError {
		fmt.Fprintln(stderr, "error:", state.Err)
		return 1
	}
	fmt.Fprint(stdout, render.Text(state.Result))
	return 0
}
