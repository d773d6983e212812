package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/infrastructure/di"
)

var askNoExec bool

// askCmd translates a question into SQL and runs it
var askCmd = &cobra.Command{
	Use:           "ask <question>",
	Short:         "Translate a question into SQL and run it",
	Args:          cobra.MinimumNArgs(1),
	RunE:          askQuestion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// execCmd runs a SQL statement through the read-only executor
var execCmd = &cobra.Command{
	Use:           "exec <sql>",
	Short:         "Run a read-only SQL statement",
	Args:          cobra.MinimumNArgs(1),
	RunE:          execSQL,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(execCmd)

	addConfigFlags(askCmd)
	askCmd.Flags().BoolVar(&askNoExec, "no-exec", false, "Only print the generated SQL")
	addConfigFlags(execCmd)
}

func askQuestion(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	return withContainer(cmd, func(ctx context.Context, c *di.Container) error {
		errOut := cmd.ErrOrStderr()
		var s *spinner.Spinner
		if isTerminal(errOut) {
			s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(errOut))
			s.Suffix = " Translating question..."
			s.Start()
		}

		resp, err := c.QueryService.Ask(ctx, interfaces.AskRequest{Question: question, Execute: !askNoExec})
		if s != nil {
			s.Stop()
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if resp.SQL != "" {
			fmt.Fprintf(out, "SQL: %s\n", resp.SQL)
		}
		if resp.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", resp.Explanation)
		}
		if !resp.Success && resp.Results == nil {
			return fmt.Errorf("translation failed: %s", resp.Error)
		}
		if resp.Results == nil {
			return nil
		}
		fmt.Fprintln(out)
		return printResult(out, *resp.Results)
	})
}

func execSQL(cmd *cobra.Command, args []string) error {
	statement := strings.Join(args, " ")

	return withContainer(cmd, func(ctx context.Context, c *di.Container) error {
		result, err := c.QueryService.Execute(ctx, statement)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), result)
	})
}

// printResult writes a result set as an aligned table followed by a row count.
func printResult(out io.Writer, result domain.QueryResult) error {
	if !result.Success {
		return fmt.Errorf("%s: %s", result.ErrorKind, result.Error)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(result.Columns, "\t"))
	for _, row := range result.Rows {
		cells := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			cells[i] = formatCell(row[col])
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	suffix := ""
	if result.Truncated {
		suffix = fmt.Sprintf(" (truncated at %d)", domain.MaxRows)
	}
	_, err := fmt.Fprintf(out, "\n%d row(s)%s\n", result.RowCount, suffix)
	return err
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
