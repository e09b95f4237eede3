package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	commitdomain "github.com/giterra/giterra/internal/commits/domain"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [MESSAGE...]",
		Short: "Classify commit messages",
		Long: `Classify prints the change type of each commit message.

Messages are read from the arguments, or one per line from stdin when no
arguments are given. Matching is case-insensitive and checks feat/add,
fix/bug, refactor, docs, style/design and chore in that order. Messages
matching nothing are chores.`,
		Example: `  giterra classify "feat: implement cache" "fix bug in parser"
  git log --format=%s | giterra classify`,
		RunE: func(cmd *cobra.Command, args []string) error {
			messages := args
			if len(messages) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						messages = append(messages, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("reading messages: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			for _, msg := range messages {
				fmt.Fprintf(out, "%-8s %s\n", commitdomain.Classify(msg), msg)
			}
			return nil
		},
	}
}
