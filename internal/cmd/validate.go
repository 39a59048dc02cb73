package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harrison/wordexpand/internal/display"
	"github.com/harrison/wordexpand/internal/enumerate"
	"github.com/harrison/wordexpand/internal/pattern"
	"github.com/harrison/wordexpand/internal/wordlist"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <pattern>",
		Short: "Check a pattern and estimate its size without enumerating",
		Long: `Validate a pattern, checking for:
  - Regular expression syntax
  - Supported expansion syntax (classes, quantifiers, placeholders)
  - Wordlist availability when the pattern uses /x

Prints every atom with its repetition and the number of candidates it
contributes, followed by warnings for likely mistakes (a class repeated
beyond its size, duplicate or missing words) and the estimated total.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wordlistPath, _ := cmd.Flags().GetString("wordlist")
			return validatePattern(args[0], wordlistPath, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("wordlist", "", "Path to a wordlist file for /x substitution")

	return cmd
}

// validatePattern validates raw and writes an atom report to output
func validatePattern(raw, wordlistPath string, output io.Writer) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	fail := func(err error) error {
		fmt.Fprintf(output, "%s %v\n", red.Sprint("✗"), err)
		return err
	}

	if err := pattern.Validate(raw); err != nil {
		return fail(err)
	}
	fmt.Fprintf(output, "%s Regular expression syntax valid\n", green.Sprint("✓"))

	var words []string
	if wordlistPath != "" {
		loaded, err := wordlist.LoadFile(wordlistPath)
		if err != nil {
			return fail(err)
		}
		words = loaded
		fmt.Fprintf(output, "%s Loaded %s words from %s\n",
			green.Sprint("✓"), humanize.Comma(int64(len(words))), wordlistPath)
	}

	atoms, err := pattern.Parse(raw, pattern.Options{AllowPlaceholder: wordlistPath != ""})
	if err != nil {
		return fail(err)
	}
	if wordlistPath != "" && atoms.Placeholders() == 0 {
		return fail(ErrWordlistWithoutPlaceholder)
	}
	fmt.Fprintf(output, "%s Parsed %d atoms\n", green.Sprint("✓"), len(atoms))

	wordCount := len(words)
	for i, atom := range atoms {
		count := enumerate.AtomCount(atom, wordCount)
		fmt.Fprintf(output, "  %2d. %-40s %s\n", i+1, atom.String(), cyan.Sprint(humanize.BigComma(count)))
	}

	if warnings := display.Diagnose(atoms, words, wordlistPath); len(warnings) > 0 {
		fmt.Fprintln(output)
		for _, w := range warnings {
			w.Display(output)
		}
	}

	total := enumerate.Estimate(atoms, wordCount)
	fmt.Fprintf(output, "\n%s Pattern is valid: up to %s candidates\n",
		green.Sprint("✓"), humanize.BigComma(total))
	return nil
}
