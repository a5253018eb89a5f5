// Package cli implements the durationctl command-line interface using Cobra.
// Each subcommand runs one calendar operation against a duration text.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/usecase/calendar"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/time"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand
type app struct {
	calendar usecase.CalendarUseCase
	output   string
	verbose  bool
}

// NewRootCommand builds the command tree. A nil calendar is replaced by a
// service without presets once flags are parsed.
func NewRootCommand(calendarUseCase usecase.CalendarUseCase) *cobra.Command {
	a := &app{calendar: calendarUseCase}

	root := &cobra.Command{
		Use:   "durationctl",
		Short: "Calendar-aware duration arithmetic",
		Long: `durationctl computes spans, boundaries and iterations for durations
such as "1h", "20w" or "2M" on the UTC calendar.

Timestamps are dates ("2018-12-07 13:12") or epoch seconds. An omitted
timestamp means now.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.output, "output", "o", formatText, "output format: text, json or yaml")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log engine decisions to stderr")

	root.AddCommand(
		a.describeCommand(),
		a.spanCommand(),
		a.alignCommand(usecase.AlignFloor, "Round a timestamp down to a span boundary"),
		a.alignCommand(usecase.AlignCeil, "Round a timestamp up to a span boundary"),
		a.alignCommand(usecase.AlignNext, "Find the first boundary after a timestamp"),
		a.alignCommand(usecase.AlignPrevious, "Find the last boundary before a timestamp"),
		a.stepCommand(),
		a.walkCommand(),
		a.iterateCommand(),
		a.countCommand(),
		a.padCommand(),
		a.calcCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := validateFormat(a.output); err != nil {
		return err
	}
	if a.calendar != nil {
		return nil
	}

	var log core.Logger = logger.NewNoopLogger()
	if a.verbose {
		zapLogger, err := logger.NewZapLogger(logger.Options{Format: "console", Level: "debug"})
		if err != nil {
			return err
		}
		log = zapLogger
	}

	a.calendar = calendar.NewService(nil, timeProvider.NewRealTimeProvider(), log, calendar.DefaultLimits())
	return nil
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(nil)
	root.Version = version

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
