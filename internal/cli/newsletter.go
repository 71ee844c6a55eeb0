package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSubscribeCmd() *cobra.Command {
	var name, email, role string
	var agree bool

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Sign up a subscriber",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"fullName": name,
				"email":    email,
				"agree":    agree,
			}
			switch role {
			case "parent":
				req["parentGroup"] = true
			case "player":
				req["playerGroup"] = true
			default:
				return fmt.Errorf("--role must be parent or player")
			}

			var result MessageResult
			if err := client.Post(cmd.Context(), "/api/newsletter/subscribe", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&role, "role", "parent", "Role: parent, player")
	cmd.Flags().BoolVar(&agree, "agree", true, "Agree to the terms")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newSubscribersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribers",
		Short: "List subscribers, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Subscriber
			if err := client.Get(cmd.Context(), "/api/admin/subscribers", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show subscriber counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Stats
			if err := client.Get(cmd.Context(), "/api/admin/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
