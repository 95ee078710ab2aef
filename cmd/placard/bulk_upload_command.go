package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"placard/internal/logging"
	"placard/internal/session"
)

func newBulkUploadCommand(ctx *commandContext) *cobra.Command {
	var screenID string
	var slotsFlag string

	cmd := &cobra.Command{
		Use:   "bulk-upload <file>",
		Short: "Upload one creative to selected slots of a single screen",
		Long: "The file is validated once against the screen's requirements, then " +
			"pushed to each selected slot. Slot failures do not stop the remaining " +
			"slots; the summary reports partial success. By default every slot of " +
			"the screen is targeted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, err := ctx.newPipeline(cmd.Context(), logging.NewNop())
			if err != nil {
				return err
			}
			defer pipe.Close()

			screen, ok := pipe.session.ScreenByID(screenID)
			if !ok {
				return fmt.Errorf("unknown screen %q", screenID)
			}

			selection := session.NewSlotSelection(screen.SlotCount)
			if strings.TrimSpace(slotsFlag) != "" {
				requested, err := parseSlotList(slotsFlag)
				if err != nil {
					return err
				}
				for slot := range requested {
					if slot > screen.SlotCount {
						return fmt.Errorf("screen %s has no slot %d", screenID, slot)
					}
				}
				for _, slot := range selection.Selected() {
					if !requested[slot] {
						selection.Toggle(slot)
					}
				}
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path %q: %w", args[0], err)
			}

			result, err := pipe.processor.BulkUpload(cmd.Context(), screenID, selection.Selected(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, slot := range result.Succeeded {
				fmt.Fprintf(out, "Slot %d: uploaded\n", slot)
			}
			for i, slot := range result.FailedSlots {
				fmt.Fprintf(out, "Slot %d: failed (%s)\n", slot, result.Errors[i])
			}
			if !result.OK() {
				return fmt.Errorf("%d of %d slots failed", len(result.FailedSlots), selection.Count())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&screenID, "screen", "", "Target screen identifier")
	cmd.Flags().StringVar(&slotsFlag, "slots", "", "Comma-separated slot numbers (default: all slots)")
	_ = cmd.MarkFlagRequired("screen")
	return cmd
}

func parseSlotList(value string) (map[int]bool, error) {
	slots := make(map[int]bool)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		slot, err := strconv.Atoi(part)
		if err != nil || slot < 1 {
			return nil, fmt.Errorf("invalid slot number %q", part)
		}
		slots[slot] = true
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("no valid slots in %q", value)
	}
	return slots, nil
}
