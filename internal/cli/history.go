package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/procsim/internal/report"
	"github.com/me/procsim/pkg/model"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		offset int
		policy string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := model.ListOptions{Limit: limit, Offset: offset}
			if policy != "" {
				kind, ok := model.ParsePolicyKind(policy)
				if !ok {
					return fmt.Errorf("unknown policy %q", policy)
				}
				opts.Policy = string(kind)
			}

			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			runs, total, err := st.ListRuns(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs found.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPOLICY\tSOURCE\tPROCESSES\tTICKS\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					r.ID, r.Policy, r.Source, r.ProcessCount, humanize.Comma(int64(r.Ticks)), humanize.Time(r.CreatedAt))
			}
			tw.Flush()

			if offset+len(runs) < total {
				fmt.Fprintf(out, "\n(%d of %d shown)\n", len(runs), total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (max 100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Runs to skip")
	cmd.Flags().StringVar(&policy, "policy", "", "Only list runs of this policy")
	return cmd
}

func newShowCmd() *cobra.Command {
	var transitions, remote bool

	cmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Show an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := fetchRun(cmd.Context(), args[0], remote)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report.PrintRun(out, run)
			if transitions {
				fmt.Fprintln(out)
				report.PrintTransitions(out, run.Transitions)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&transitions, "transitions", false, "Also print the state timeline")
	cmd.Flags().BoolVar(&remote, "remote", false, "Read from the server archive instead of the local database")
	return cmd
}

func fetchRun(ctx context.Context, id string, remote bool) (*model.Run, error) {
	if remote {
		run, err := client.GetRun(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get run: %w", err)
		}
		return run, nil
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	run, err := st.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return run, nil
}

func newDeleteCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "delete <run_id>",
		Short: "Remove a run from the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if remote {
				if err := client.DeleteRun(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete run: %w", err)
				}
			} else {
				st, err := openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.DeleteRun(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete run: %w", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Delete from the server archive instead of the local database")
	return cmd
}
