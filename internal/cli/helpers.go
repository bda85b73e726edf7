// Shared helpers for realty CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/realty/internal/crm"
	"github.com/mesh-intelligence/realty/pkg/types"
)

// noArgs and exactArgs wrap cobra's validators so that a wrong argument
// count exits as a user error.
var noArgs = wrapArgs(cobra.NoArgs)

func exactArgs(n int) cobra.PositionalArgs {
	return wrapArgs(cobra.ExactArgs(n))
}

func wrapArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// requireFlags fails with a usage error naming every flag in names that was
// not given on the command line.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, strconv.Quote(name))
		}
	}
	if len(missing) > 0 {
		return usagef("required flag(s) %s not set", strings.Join(missing, ", "))
	}
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("invalid id %q: must be an integer", arg)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// kindView describes how the generic get, list, and remove commands reach
// and render one entity kind.
type kindView[T types.Entity] struct {
	kind   types.Kind
	plural string
	header []string
	row    func(T) []string
	get    func(*crm.Service, int) (T, error)
	list   func(*crm.Service) []T
	remove func(*crm.Service, context.Context, int) (bool, error)
}

// printRecords writes recs as a JSON array or as an aligned table.
func printRecords[T types.Entity](a *app, w io.Writer, v kindView[T], recs []T) error {
	if a.flags.jsonMode {
		if recs == nil {
			recs = []T{}
		}
		return printJSON(w, recs)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(v.header, "\t"))
	for _, r := range recs {
		fmt.Fprintln(tw, strings.Join(v.row(r), "\t"))
	}
	return tw.Flush()
}

// printRecord writes one record as a JSON object or as a one-row table.
func printRecord[T types.Entity](a *app, w io.Writer, v kindView[T], rec T) error {
	if a.flags.jsonMode {
		return printJSON(w, rec)
	}
	return printRecords(a, w, v, []T{rec})
}

// printSaved reports a created or updated record.
func printSaved[T types.Entity](a *app, w io.Writer, verb string, rec T) error {
	if a.flags.jsonMode {
		return printJSON(w, rec)
	}
	_, err := fmt.Fprintf(w, "%s %s %d\n", verb, rec.EntityKind(), rec.EntityID())
	return err
}

func newGetCmd[T types.Entity](a *app, v kindView[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", v.kind),
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := v.get(svc, id)
			if err != nil {
				return err
			}
			return printRecord(a, cmd.OutOrStdout(), v, rec)
		},
	}
}

func newListCmd[T types.Entity](a *app, v kindView[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List all %s in insertion order", v.plural),
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(a, cmd.OutOrStdout(), v, v.list(svc))
		},
	}
}

func newRemoveCmd[T types.Entity](a *app, v kindView[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: fmt.Sprintf("Remove one %s", v.kind),
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			removed, err := v.remove(svc, cmd.Context(), id)
			if err != nil {
				return err
			}
			if !removed {
				return types.NewNotFoundError(v.kind, id)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"kind": v.kind, "id": id, "removed": true})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %d\n", v.kind, id)
			return err
		},
	}
}

// newKindCmd groups the five record subcommands under one noun.
func newKindCmd(use, short string, subs ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return cmd.Help()
		},
	}
	cmd.AddCommand(subs...)
	return cmd
}

// periodFlags returns start and end with the --start-date and --end-date
// flags applied over them when those flags were set.
func periodFlags(fs *pflag.FlagSet, startText, endText string, start, end types.Date) (types.Date, types.Date, error) {
	var err error
	if fs.Changed("start-date") {
		if start, err = types.ParseDate(startText); err != nil {
			return start, end, err
		}
	}
	if fs.Changed("end-date") {
		if end, err = types.ParseDateOrEmpty(endText); err != nil {
			return start, end, err
		}
	}
	return start, end, nil
}

// Text rendering of field values.

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatDate(d types.Date) string {
	if d.IsEmpty() {
		return "-"
	}
	return d.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
