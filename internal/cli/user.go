package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User account commands",
	}

	cmd.AddCommand(newUserRegisterCmd())
	cmd.AddCommand(newUserLoginCmd())
	cmd.AddCommand(newUserMeCmd())
	cmd.AddCommand(newUserRegenerateCodeCmd())

	return cmd
}

func newUserRegisterCmd() *cobra.Command {
	var name, email, role, company string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":    name,
				"email":   email,
				"role":    role,
				"company": company,
			}
			var result RegisterResult

			if err := client.Post("/api/v1/users/register", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&role, "role", "", "Job role (required)")
	cmd.Flags().StringVar(&company, "company", "", "Company (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func newUserLoginCmd() *cobra.Command {
	var email, code string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and access code",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"email":       email,
				"access_code": code,
			}
			var result LoginResult

			if err := client.Post("/api/v1/users/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&code, "code", "", "Access code (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newUserMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show current user info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Get("/api/v1/users/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUserRegenerateCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate-code",
		Short: "Replace your access code with a new one",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AccessCodeResult

			if err := client.Post("/api/v1/users/me/regenerate-code", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
