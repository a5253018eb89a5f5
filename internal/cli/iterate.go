package cli

import (
	"fmt"
	"io"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultWalkLimit = 10

// intervalFlags reads the START END arguments and the bound flags shared by
// iterate, count and pad
type intervalFlags struct {
	excludeStart bool
	excludeEnd   bool
}

func (f *intervalFlags) register(flags *pflag.FlagSet) {
	flags.BoolVar(&f.excludeStart, "exclude-start", false, "leave the interval's start out")
	flags.BoolVar(&f.excludeEnd, "exclude-end", false, "leave the interval's end out")
}

func (f *intervalFlags) interval(start, end string) (entity.Interval, error) {
	return dto.IntervalRequest{
		Start:     dto.TimeRef(start),
		End:       dto.TimeRef(end),
		StartOpen: f.excludeStart,
		EndOpen:   f.excludeEnd,
	}.ToInterval()
}

func (a *app) walkCommand() *cobra.Command {
	var opts entity.WalkOptions

	cmd := &cobra.Command{
		Use:   "walk DURATION [TIME]",
		Short: "List consecutive spans starting at a timestamp",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spans, err := a.calendar.Walk(cmd.Context(), args[0], timeArg(args), opts)
			if err != nil {
				return err
			}
			return a.renderSpans(cmd, args[0], spans)
		},
	}

	cmd.Flags().IntVar(&opts.Size, "size", 1, "units per span")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", defaultWalkLimit, "number of spans")
	cmd.Flags().BoolVar(&opts.Backward, "backward", false, "walk toward earlier spans")
	cmd.Flags().BoolVar(&opts.StartOpen, "start-open", false, "use (lo, hi] spans instead of [lo, hi)")
	return cmd
}

func (a *app) iterateCommand() *cobra.Command {
	var (
		opts   entity.IterateOptions
		bounds intervalFlags
	)

	cmd := &cobra.Command{
		Use:   "iterate DURATION START END",
		Short: "List the spans tiling an interval",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			iv, err := bounds.interval(args[1], args[2])
			if err != nil {
				return err
			}
			spans, err := a.calendar.Iterate(cmd.Context(), args[0], iv, opts)
			if err != nil {
				return err
			}
			return a.renderSpans(cmd, args[0], spans)
		},
	}

	bounds.register(cmd.Flags())
	cmd.Flags().IntVar(&opts.Size, "size", 1, "units per span")
	cmd.Flags().BoolVar(&opts.Backward, "backward", false, "start from the end of the interval")
	cmd.Flags().BoolVar(&opts.StartOpen, "start-open", false, "use (lo, hi] spans instead of [lo, hi)")
	return cmd
}

func (a *app) countCommand() *cobra.Command {
	var (
		startOpen bool
		bounds    intervalFlags
	)

	cmd := &cobra.Command{
		Use:   "count DURATION START END",
		Short: "Count the spans tiling an interval",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			iv, err := bounds.interval(args[1], args[2])
			if err != nil {
				return err
			}
			n, err := a.calendar.Count(cmd.Context(), args[0], iv, startOpen)
			if err != nil {
				return err
			}

			resp := dto.CountResponse{Duration: args[0], Count: n}
			return a.render(cmd, resp, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, n)
				return err
			})
		},
	}

	bounds.register(cmd.Flags())
	cmd.Flags().BoolVar(&startOpen, "start-open", false, "use (lo, hi] spans instead of [lo, hi)")
	return cmd
}

func (a *app) padCommand() *cobra.Command {
	var (
		before, after int
		bounds        intervalFlags
	)

	cmd := &cobra.Command{
		Use:   "pad DURATION START END",
		Short: "Widen an interval by whole spans",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			iv, err := bounds.interval(args[1], args[2])
			if err != nil {
				return err
			}
			padded, err := a.calendar.Pad(cmd.Context(), args[0], iv, before, after)
			if err != nil {
				return err
			}

			resp := dto.SpanResponse{Duration: args[0], Span: dto.NewIntervalResponse(padded)}
			return a.render(cmd, resp, func(w io.Writer) error {
				return writeSpans(w, []dto.IntervalResponse{resp.Span})
			})
		},
	}

	bounds.register(cmd.Flags())
	cmd.Flags().IntVar(&before, "before", 0, "spans to add before the start")
	cmd.Flags().IntVar(&after, "after", 0, "spans to add after the end")
	return cmd
}

func (a *app) renderSpans(cmd *cobra.Command, duration string, spans []entity.Interval) error {
	resp := dto.NewSpansResponse(duration, spans)
	return a.render(cmd, resp, func(w io.Writer) error {
		return writeSpans(w, resp.Spans)
	})
}
