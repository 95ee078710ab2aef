package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"placard/internal/logging"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show campaign readiness and queue state",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, err := ctx.newPipeline(cmd.Context(), logging.NewNop())
			if err != nil {
				return err
			}
			defer pipe.Close()

			metrics := pipe.session.Metrics()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Campaign: %s\n\n", pipe.cfg.Campaign.ID)
			fmt.Fprintln(out, renderTable(out,
				[]string{"Metric", "Value"},
				[][]string{
					{"Total slots", strconv.Itoa(metrics.TotalSlots)},
					{"Mapped slots", strconv.Itoa(metrics.MappedCount)},
					{"Uploaded", strconv.Itoa(metrics.UploadedCount)},
					{"Approved", strconv.Itoa(metrics.ApprovedCount)},
					{"Ready to progress", yesNo(metrics.Ready())},
				},
				[]columnAlignment{alignLeft, alignRight}))

			health, err := pipe.store.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("queue health: %w", err)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(out,
				[]string{"Queue", "Count"},
				[][]string{
					{"Queued", strconv.Itoa(health.Queued)},
					{"Uploading", strconv.Itoa(health.Uploading)},
					{"Done", strconv.Itoa(health.Done)},
					{"Error", strconv.Itoa(health.Errored)},
					{"Total", strconv.Itoa(health.Total)},
				},
				[]columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}
