package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin session commands",
	}

	cmd.AddCommand(newAdminLoginCmd())
	cmd.AddCommand(newAdminLogoutCmd())
	cmd.AddCommand(newAdminStatusCmd())

	return cmd
}

func newAdminLoginCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with the admin code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if code == "" {
				code = os.Getenv("JUMPI_ADMIN_CODE")
			}
			if code == "" {
				return fmt.Errorf("--code is required")
			}

			var result MessageResult
			if err := client.Post(cmd.Context(), "/api/admin/login", map[string]string{"code": code}, &result); err != nil {
				return err
			}

			// Save session
			if err := cfg.SaveSession(client.Session()); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Admin code (env: JUMPI_ADMIN_CODE)")

	return cmd
}

func newAdminLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageResult
			if err := client.Post(cmd.Context(), "/api/admin/logout", nil, &result); err != nil {
				return err
			}

			if err := cfg.ClearSession(); err != nil {
				return fmt.Errorf("failed to remove session: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newAdminStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"check-auth"},
		Short:   "Show whether the saved session is authenticated",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AuthStatus
			if err := client.Get(cmd.Context(), "/api/admin/check-auth", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
