package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// historyCommand creates the history command group.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and manage stored draws",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyDeleteCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored draws, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newHistoryStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			draws, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(draws) == 0 {
				printInfo("No stored draws")
				return nil
			}

			for _, d := range draws {
				fmt.Println(
					StyleHighlight.Render(shortID(d.ID)) + "  " +
						StyleDim.Render(d.CreatedAt.Local().Format("2006-01-02 15:04")) + "  " +
						StyleValue.Render(fmt.Sprintf("%d participants", d.Ladder.Columns)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of draws to list (0 = all)")
	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <draw-id>",
		Short: "Show a stored draw's assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newHistoryStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			d, err := findDraw(ctx, store, args[0])
			if err != nil {
				return err
			}

			printKeyValue("Draw ID", d.ID)
			printKeyValue("Created", d.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			printNewline()
			printMapping(d.Ladder.Participants, d.Ladder.Results, d.Ladder.Mapping)
			printStats(d.Ladder.Columns, d.Ladder.Rows, len(d.Ladder.Rungs), false)
			return nil
		},
	}
}

// historyDeleteCommand creates the "history delete" subcommand.
func (c *CLI) historyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <draw-id>",
		Short: "Delete a stored draw",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newHistoryStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			d, err := findDraw(ctx, store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(ctx, d.ID); err != nil {
				return err
			}
			printSuccess("Deleted draw %s", shortID(d.ID))
			return nil
		},
	}
}
