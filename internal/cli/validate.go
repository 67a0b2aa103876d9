package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/me/procsim/internal/loader"
	"github.com/me/procsim/internal/scheduler"
	"github.com/me/procsim/pkg/model"
)

func newValidateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate <workload>",
		Short: "Check a workload file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			procs, err := loadWorkload(args[0], format)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d processes\n\n", args[0], len(procs))

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPRIORITY\tADMITTED AS\tINSTR\tI/O")
			for i := range procs {
				p := procs[i].Clone()
				io := 0
				for _, ins := range p.Instructions() {
					if ins == model.IOInstruction {
						io++
					}
				}
				declared := p.Priority()
				scheduler.CalculateInitialPriority(&p)
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", p.Name(), declared, p.Priority(), p.Len(), io)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if dups := loader.DuplicateNames(procs); len(dups) > 0 {
				fmt.Fprintf(out, "\nDuplicate names: %s\n", strings.Join(dups, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Workload format (text, yaml); default from the file extension")
	return cmd
}
