package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/procsim/internal/loader"
	"github.com/me/procsim/internal/report"
	"github.com/me/procsim/pkg/model"
)

func newSubmitCmd() *cobra.Command {
	var (
		policy string
		format string
		ioWait time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit <workload>",
		Short: "Simulate a workload on the procsim server",
		Long:  "Send a workload to the procsim server, which runs it, archives it and returns the report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read workload: %w", err)
			}
			if format == "" {
				format = string(loader.FormatFromPath(path))
			}

			req := model.CreateRunRequest{
				Policy:   policy,
				Format:   format,
				Workload: string(data),
				Source:   filepath.Base(path),
			}
			if cmd.Flags().Changed("io-wait") {
				req.IOWait = ioWait.String()
			}

			logger.Info("submitting workload", "path", path, "server", flagServer)
			run, err := client.CreateRun(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("submit run: %w", err)
			}
			report.PrintRun(cmd.OutOrStdout(), run)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Scheduling policy (default: the server's)")
	cmd.Flags().StringVar(&format, "format", "", "Workload format (text, yaml); default from the file extension")
	cmd.Flags().DurationVar(&ioWait, "io-wait", 0, "Blocked release delay (default: the server's)")
	return cmd
}

func newListCmd() *cobra.Command {
	opts := model.DefaultListOptions()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs archived on the procsim server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, page, err := client.ListRuns(cmd.Context(), opts)
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
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
					r.ID, r.Policy, r.Source, r.ProcessCount, r.Ticks, humanize.Time(r.CreatedAt))
			}
			tw.Flush()

			if page != nil && page.HasMore {
				fmt.Fprintf(out, "\n(%d of %d shown)\n", len(runs), page.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", opts.Limit, "Maximum runs to list (max 100)")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Runs to skip")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "Only list runs of this policy")
	return cmd
}
