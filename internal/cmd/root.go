package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for wordexpand.
// The root command itself performs the expansion; validate and history are
// subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordexpand <pattern>",
		Short: "Generate all possible strings matching a regex pattern",
		Long: `wordexpand enumerates every string matching a constrained pattern and
prints them one per line in sorted order.

Supported syntax:
  abc          literal characters
  [a-z0-9_]    bracket expressions with ranges, [^...] negation
  \w \d \s     shorthand classes (and \W \D \S complements)
  {m} {m,n} ?  bounded repetition
  /x           placeholder replaced by each word of --wordlist

A repeated class never reuses a character within one occurrence:
"h[ao]{0,2}t" yields haot, hat, hoat, hot, ht.

The words "validate" and "history" run the subcommands of the same name;
write them as "[v]alidate" or "[h]istory" to expand them as patterns.`,
		Example: `  wordexpand 'h[ao]{0,2}t'
  wordexpand '0/x1/x2' --wordlist words.txt
  wordexpand '\d{2}' --output digits.txt`,
		Version:      Version,
		Args:         requirePattern,
		RunE:         runExpand,
		SilenceUsage: true,
		// main prints the error once
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .wordexpand/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Diagnostic verbosity on stderr: trace, debug, info, warn, error")

	cmd.Flags().String("wordlist", "", "Path to a wordlist file for /x substitution (.txt, .md or .yaml)")
	cmd.Flags().StringP("output", "o", "", "Write candidates to a file instead of stdout")
	cmd.Flags().Bool("count", false, "Print only the number of candidates")
	cmd.Flags().Uint64("max", 0, "Abort if the pattern may expand to more candidates (0 = unlimited)")
	cmd.Flags().Bool("history", false, "Record this run in the history database")

	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// requirePattern accepts exactly one positional pattern and prints usage
// when it is missing.
func requirePattern(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return nil
	}
	cmd.Usage()
	if len(args) == 0 {
		return fmt.Errorf("missing required argument: pattern")
	}
	return fmt.Errorf("expected a single pattern argument, got %d", len(args))
}
