package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amidalab/amidakuji/pkg/share"
)

// shareCommand creates the share command group.
func (c *CLI) shareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Encode, decode, and QR-encode lottery setups",
		Long: `Share codes carry the participant and result lists, not a drawn ladder:
whoever opens a share code draws a fresh, independent lottery with the same
inputs.`,
	}

	cmd.AddCommand(c.shareEncodeCommand())
	cmd.AddCommand(c.shareDecodeCommand())
	cmd.AddCommand(c.shareQRCommand())

	return cmd
}

// shareEncodeCommand creates the "share encode" subcommand.
func (c *CLI) shareEncodeCommand() *cobra.Command {
	var participants, results string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a lottery setup as a share code",
		Example: `  amidakuji share encode -p "alice,bob" -r "win,lose"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := share.Encode(splitEntries(participants), splitEntries(results))
			if err != nil {
				return err
			}
			fmt.Println(code)

			url, err := share.URL(c.Config.Server.ShareBaseURL, code)
			if err == nil {
				printDetail("URL: %s", url)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&participants, "participants", "p", "", "comma-separated participant names (required)")
	cmd.Flags().StringVarP(&results, "results", "r", "", "comma-separated result labels (required)")
	_ = cmd.MarkFlagRequired("participants")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}

// shareDecodeCommand creates the "share decode" subcommand.
func (c *CLI) shareDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <code>",
		Short: "Decode a share code back into its lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			participants, results, err := share.Decode(args[0])
			if err != nil {
				return err
			}
			for i, p := range participants {
				fmt.Println(StyleValue.Render(p) + " " + StyleDim.Render("vs") + " " + StyleValue.Render(results[i]))
			}
			printNewline()
			printNextStep("Draw this lottery", fmt.Sprintf("%s draw -p %q -r %q", appName, joinEntries(participants), joinEntries(results)))
			return nil
		},
	}
}

// shareQRCommand creates the "share qr" subcommand.
func (c *CLI) shareQRCommand() *cobra.Command {
	var output string
	var size int

	cmd := &cobra.Command{
		Use:   "qr <code>",
		Short: "Render a share code as a QR image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate before rendering so a typo fails loudly instead of
			// producing a QR code nobody can open.
			if _, _, err := share.Decode(args[0]); err != nil {
				return err
			}

			url, err := share.URL(c.Config.Server.ShareBaseURL, args[0])
			if err != nil {
				return err
			}
			png, err := share.QR(url, size)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, png, 0o644); err != nil {
				return err
			}
			printSuccess("Wrote QR code")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "share.png", "output PNG path")
	cmd.Flags().IntVar(&size, "size", 256, "image size in pixels")

	return cmd
}

// joinEntries is the inverse of splitEntries for display in suggested
// commands.
func joinEntries(entries []string) string {
	out := ""
	for i, e := range entries {
		if i > 0 {
			out += ","
		}
		out += e
	}
	return out
}
