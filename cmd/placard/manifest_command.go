package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"placard/internal/logging"
)

func newManifestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Show the expected slot assignments for the campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, err := ctx.newPipeline(cmd.Context(), logging.NewNop())
			if err != nil {
				return err
			}
			defer pipe.Close()

			m := pipe.session.Manifest()
			if m == nil || m.TotalSlots() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No screens found for this campaign.")
				return nil
			}

			rows := make([][]string, 0, m.TotalSlots())
			for _, entry := range m.Entries() {
				rows = append(rows, []string{
					entry.ScreenName,
					strconv.Itoa(entry.Slot),
					entry.Filename,
					statusLabel(pipe.session.Assets.StatusFor(entry.Key())),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Screen", "Slot", "Expected File", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft}))
			return nil
		},
	}
}
