package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tutorflow/internal/exam"
)

func newDistributionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "distribution <num-questions>",
		Short: "Show the question type mix for an exam size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", args[0], err)
			}
			d, err := exam.ComposeDistribution(n)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(d)
			}
			_, err = lipgloss.Fprint(cmd.OutOrStdout(), renderDistribution(n, d))
			return err
		},
	}
	c.Flags().Bool("json", false, "Print the distribution as JSON")
	return c
}
