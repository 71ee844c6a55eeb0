package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSendUpdateCmd() *cobra.Command {
	var subject, message, messageFile string

	cmd := &cobra.Command{
		Use:   "send-update",
		Short: "Email an update to every subscriber",
		RunE: func(cmd *cobra.Command, args []string) error {
			if messageFile != "" {
				data, err := os.ReadFile(messageFile)
				if err != nil {
					return fmt.Errorf("failed to read message file: %w", err)
				}
				message = string(data)
			}

			req := map[string]string{
				"subject": subject,
				"message": message,
			}

			var result SendUpdateResult
			if err := client.Post(cmd.Context(), "/api/admin/send-update", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Email subject (required)")
	cmd.Flags().StringVar(&message, "message", "", "Message body; newlines become line breaks")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "Read the message body from a file")
	_ = cmd.MarkFlagRequired("subject")
	cmd.MarkFlagsOneRequired("message", "message-file")
	cmd.MarkFlagsMutuallyExclusive("message", "message-file")

	return cmd
}
