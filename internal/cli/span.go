package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/spf13/cobra"
)

// timeArg returns the optional timestamp argument following the duration
func timeArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

func (a *app) describeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe DURATION",
		Short: "Show how a duration is classified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.calendar.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			resp := dto.NewDurationResponse(info)
			return a.render(cmd, resp, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintf(tw, "Duration:\t%s\n", resp.Duration)
				fmt.Fprintf(tw, "Unit:\t%s\n", resp.Unit)
				fmt.Fprintf(tw, "Magnitude:\t%d\n", resp.Magnitude)
				if resp.Parent != "" {
					fmt.Fprintf(tw, "Parent:\t%s\n", resp.Parent)
				}
				fmt.Fprintf(tw, "Uniform:\t%t\n", resp.IsUniform)
				fmt.Fprintf(tw, "Calendar required:\t%t\n", resp.IsCalendarRequired)
				fmt.Fprintf(tw, "Seconds:\t%g (min %g, max %g)\n", resp.Seconds, resp.MinSeconds, resp.MaxSeconds)
				return tw.Flush()
			})
		},
	}
}

func (a *app) spanCommand() *cobra.Command {
	var startOpen bool

	cmd := &cobra.Command{
		Use:   "span DURATION [TIME]",
		Short: "Show the span holding a timestamp",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			span, err := a.calendar.Span(cmd.Context(), args[0], timeArg(args), startOpen)
			if err != nil {
				return err
			}

			resp := dto.SpanResponse{Duration: args[0], Span: dto.NewIntervalResponse(span)}
			return a.render(cmd, resp, func(w io.Writer) error {
				return writeSpans(w, []dto.IntervalResponse{resp.Span})
			})
		},
	}

	cmd.Flags().BoolVar(&startOpen, "start-open", false, "use (lo, hi] spans instead of [lo, hi)")
	return cmd
}

func (a *app) alignCommand(mode usecase.AlignMode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(mode) + " DURATION [TIME]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.calendar.Align(cmd.Context(), args[0], timeArg(args), mode)
			if err != nil {
				return err
			}
			return a.renderPoint(cmd, args[0], t)
		},
	}
}

func (a *app) stepCommand() *cobra.Command {
	var (
		count    int
		backward bool
	)

	cmd := &cobra.Command{
		Use:   "step DURATION [TIME]",
		Short: "Move a timestamp across span boundaries",
		Long: `Move a timestamp across span boundaries. A timestamp inside a span
counts the boundary it is closest to in the direction of travel as the first
step. A negative count moves backward.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.calendar.Step(cmd.Context(), args[0], timeArg(args), count, backward)
			if err != nil {
				return err
			}
			return a.renderPoint(cmd, args[0], t)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of boundaries to cross")
	cmd.Flags().BoolVar(&backward, "backward", false, "move toward earlier timestamps")
	return cmd
}

func (a *app) renderPoint(cmd *cobra.Command, duration string, t float64) error {
	resp := dto.NewPointResponse(duration, t)
	return a.render(cmd, resp, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s\t%s\n", formatTime(t), formatSeconds(t))
		return err
	})
}
