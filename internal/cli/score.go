package cli

import (
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score submission commands",
	}

	cmd.AddCommand(newScoreSubmitCmd())

	return cmd
}

func newScoreSubmitCmd() *cobra.Command {
	var userID string
	var elapsed float64
	var completed bool
	var mistakes int

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a play session result",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"user_id":   userID,
				"time":      elapsed,
				"completed": completed,
				"mistakes":  mistakes,
			}
			var result SubmitResult

			if err := client.Post("/api/v1/scores", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID (required)")
	cmd.Flags().Float64Var(&elapsed, "time", 0, "Elapsed time in seconds (required)")
	cmd.Flags().BoolVar(&completed, "completed", false, "Whether the game was completed")
	cmd.Flags().IntVar(&mistakes, "mistakes", 0, "Number of mistakes")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top 10 leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			if err := client.Get("/api/v1/scores", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
