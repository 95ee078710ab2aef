package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"placard/internal/logging"
	"placard/internal/queue"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var noWait bool

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Queue creatives and upload them to their matched slots",
		Long: "Each file is matched against the campaign manifest by name, validated " +
			"against every matched screen's requirements, and uploaded to all matched " +
			"slots. Files that match nothing or fail validation are reported and left " +
			"in the queue with their error.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, err := ctx.newPipeline(cmd.Context(), logging.NewNop())
			if err != nil {
				return err
			}
			defer pipe.Close()

			out := cmd.OutOrStdout()
			var entries []*queue.Entry
			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("resolve path %q: %w", arg, err)
				}
				entry, err := pipe.store.Enqueue(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("enqueue %s: %w", arg, err)
				}
				fmt.Fprintf(out, "Queued %s (entry %d)\n", entry.Filename, entry.ID)
				entries = append(entries, entry)
			}

			if noWait {
				fmt.Fprintln(out, "Entries queued; a running `placard run` instance will process them.")
				return nil
			}

			failures := 0
			for _, entry := range entries {
				if err := pipe.processor.ProcessEntry(cmd.Context(), entry); err != nil {
					return fmt.Errorf("process %s: %w", entry.Filename, err)
				}
				switch entry.Status {
				case queue.StatusDone:
					fmt.Fprintf(out, "Uploaded %s\n", entry.Filename)
				case queue.StatusError:
					failures++
					fmt.Fprintf(out, "Failed %s: %s\n", entry.Filename, entry.ErrorMessage)
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d files failed", failures, len(entries))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Queue the files without processing them")
	return cmd
}
