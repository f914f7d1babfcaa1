package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newResearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research",
		Short: "Manage timestamped research directories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new <short_name>",
		Short: "Create <workflow-root>/thoughts/<epoch>_<short_name> and print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.creator().Create(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List research directories, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.creator().List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No research directories found.")
				fmt.Fprintln(out, "Run 'workbench research new <short_name>' to create one.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.CreatedAt.Format(time.RFC3339), e.ShortName, e.Path)
			}
			return tw.Flush()
		},
	})

	return cmd
}
