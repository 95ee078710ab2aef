package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"placard/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and maintain the upload queue",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueueRemoveCommand(ctx))
	queueCmd.AddCommand(newQueueHealthCommand(ctx))

	return queueCmd
}

func (c *commandContext) openStore() (*queue.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return queue.Open(cfg)
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queue entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var statuses []queue.Status
			if statusFilter != "" {
				status, ok := queue.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q (expected one of queued, uploading, done, error)", statusFilter)
				}
				statuses = append(statuses, status)
			}

			entries, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Queue is empty.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					entry.Filename,
					formatBytes(entry.SizeBytes),
					statusLabel(string(entry.Status)),
					strconv.Itoa(entry.Progress) + "%",
					truncateText(entry.ErrorMessage, 60),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "File", "Size", "Status", "Progress", "Error"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignLeft}))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show entries with this status")
	return cmd
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var clearAll, clearDone, clearFailed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove entries from the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var removed int64
			switch {
			case clearAll:
				removed, err = store.Clear(cmd.Context())
			case clearFailed:
				removed, err = store.ClearFailed(cmd.Context())
			case clearDone:
				removed, err = store.ClearDone(cmd.Context())
			default:
				return fmt.Errorf("specify one of --all, --done, or --failed")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "all", false, "Remove every entry")
	cmd.Flags().BoolVar(&clearDone, "done", false, "Remove completed entries")
	cmd.Flags().BoolVar(&clearFailed, "failed", false, "Remove errored entries")
	return cmd
}

func newQueueRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a single queue entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no queue entry with id %d", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d\n", id)
			return nil
		},
	}
}

func newQueueHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check queue database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			health, err := store.CheckHealth(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Check", "Result"},
				[][]string{
					{"Database path", health.DBPath},
					{"Database exists", yesNo(health.DatabaseExists)},
					{"Database readable", yesNo(health.DatabaseReadable)},
					{"Table present", yesNo(health.TableExists)},
					{"Integrity check", yesNo(health.IntegrityCheck)},
					{"Total entries", strconv.Itoa(health.TotalEntries)},
				},
				nil))
			return nil
		},
	}
}
