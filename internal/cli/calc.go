package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/spf13/cobra"
)

func (a *app) calcCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calc DURATION OP [OPERAND]",
		Short: "Combine a duration's seconds with a number",
		Long: `Combine a duration's seconds with a number.

OP is one of seconds, add, sub, mul, div, divide-into, neg or abs. Durations
without an exact length use their longest span; div refuses them.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var operand float64
			if len(args) == 3 {
				v, err := strconv.ParseFloat(args[2], 64)
				if err != nil {
					return fmt.Errorf("operand %q is not a number", args[2])
				}
				operand = v
			}

			op := usecase.ArithmeticOp(args[1])
			result, err := a.calendar.Evaluate(cmd.Context(), args[0], op, operand)
			if err != nil {
				return err
			}

			resp := dto.ArithmeticResponse{Duration: args[0], Op: string(op), Operand: operand, Result: result}
			return a.render(cmd, resp, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, formatSeconds(result))
				return err
			})
		},
	}
}
