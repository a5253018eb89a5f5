package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q, expected text, json or yaml", format)
	}
}

// render writes v as JSON or YAML, or calls text for the plain format.
// JSON and YAML share the HTTP API's response shapes.
func (a *app) render(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	w := cmd.OutOrStdout()

	switch a.output {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func formatTime(t float64) string {
	return entity.TimeOf(t).Format(time.RFC3339Nano)
}

func formatSeconds(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

func writeSpans(w io.Writer, spans []dto.IntervalResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tEND\tINTERVAL")
	for _, s := range spans {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			s.StartTime.Format(time.RFC3339Nano),
			s.EndTime.Format(time.RFC3339Nano),
			s.Notation,
		)
	}
	return tw.Flush()
}
