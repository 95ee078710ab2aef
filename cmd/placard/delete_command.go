package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"placard/internal/logging"
	"placard/internal/manifest"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var screenID string
	var slot int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the asset occupying a slot",
		Long: "Deletes the remote asset keyed by screen and slot number, drops the " +
			"local record, and removes queue entries whose filename matches the " +
			"slot's expected creative.",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, err := ctx.newPipeline(cmd.Context(), logging.NewNop())
			if err != nil {
				return err
			}
			defer pipe.Close()

			key := manifest.SlotKey{ScreenID: screenID, Slot: slot}
			if err := pipe.processor.Delete(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted asset for screen %s slot %d\n", screenID, slot)
			return nil
		},
	}

	cmd.Flags().StringVar(&screenID, "screen", "", "Screen identifier")
	cmd.Flags().IntVar(&slot, "slot", 0, "Slot number")
	_ = cmd.MarkFlagRequired("screen")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}
