package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"placard/internal/services/campaign"
)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <screen-id>",
		Short: "Request a creative brief for a screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := campaign.New(cfg)
			if err != nil {
				return err
			}

			brief, err := client.Suggest(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, brief, "", "  "); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), string(brief))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
}
