package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/wordexpand/internal/config"
	"github.com/harrison/wordexpand/internal/enumerate"
	"github.com/harrison/wordexpand/internal/history"
	"github.com/harrison/wordexpand/internal/logger"
	"github.com/harrison/wordexpand/internal/output"
	"github.com/harrison/wordexpand/internal/pattern"
	"github.com/harrison/wordexpand/internal/wordlist"
	"github.com/spf13/cobra"
)

// ErrWordlistWithoutPlaceholder is returned when a wordlist is supplied for
// a pattern that has nowhere to substitute it.
var ErrWordlistWithoutPlaceholder = errors.New("when using --wordlist, the pattern must contain at least one " + pattern.PlaceholderToken)

// expandRequest carries everything one expansion needs.
type expandRequest struct {
	Pattern       string
	WordlistPath  string // Empty when no wordlist was supplied
	MaxCandidates uint64
}

// expandResult is the materialized outcome of an expansion.
type expandResult struct {
	Candidates []string
	Atoms      pattern.Sequence
	WordCount  int
	Duration   time.Duration
}

// expand runs the pipeline: validate, load wordlist, parse, enumerate.
// Nothing is written; on error no candidates are returned.
func expand(req expandRequest, log logger.Logger) (*expandResult, error) {
	start := time.Now()

	if err := pattern.Validate(req.Pattern); err != nil {
		return nil, err
	}
	log.LogTrace(fmt.Sprintf("pattern %q compiles as a regular expression", req.Pattern))

	var words []string
	if req.WordlistPath != "" {
		loaded, err := wordlist.LoadFile(req.WordlistPath)
		if err != nil {
			return nil, err
		}
		words = loaded
		log.LogDebug(fmt.Sprintf("loaded %d words from %s (%s)",
			len(words), req.WordlistPath, wordlist.DetectFormat(req.WordlistPath)))
		if len(words) == 0 {
			log.LogWarn(fmt.Sprintf("wordlist %s contains no words", req.WordlistPath))
		}
	}

	atoms, err := pattern.Parse(req.Pattern, pattern.Options{AllowPlaceholder: req.WordlistPath != ""})
	if err != nil {
		return nil, err
	}
	if req.WordlistPath != "" && atoms.Placeholders() == 0 {
		return nil, ErrWordlistWithoutPlaceholder
	}
	for i, atom := range atoms {
		log.LogTrace(fmt.Sprintf("atom %d: %s", i, atom))
	}

	estimate := enumerate.Estimate(atoms, len(words))
	log.LogDebug(fmt.Sprintf("parsed %d atoms, up to %s candidates", len(atoms), estimate.String()))

	engine := enumerate.NewEngine(words, req.MaxCandidates)
	candidates, err := engine.Expand(atoms)
	if err != nil {
		return nil, err
	}

	result := &expandResult{
		Candidates: candidates,
		Atoms:      atoms,
		WordCount:  len(words),
		Duration:   time.Since(start),
	}
	log.LogInfo(fmt.Sprintf("generated %d candidates in %s",
		len(candidates), logger.FormatDuration(result.Duration)))
	return result, nil
}

// loadConfig loads the config file named by --config (or the default
// location), applies flag overrides and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		cfg.ResolvePaths(filepath.Dir(configPath))
	} else {
		cfg, err = config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var logLevelPtr, outputPtr *string
	var maxPtr *uint64
	var historyPtr *bool

	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetString("output")
		outputPtr = &v
	}
	if f := cmd.Flags().Lookup("max"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetUint64("max")
		maxPtr = &v
	}
	if f := cmd.Flags().Lookup("history"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("history")
		historyPtr = &v
	}
	cfg.MergeWithFlags(logLevelPtr, maxPtr, outputPtr, historyPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runExpand implements the root command
func runExpand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	wordlistPath, _ := cmd.Flags().GetString("wordlist")
	result, err := expand(expandRequest{
		Pattern:       args[0],
		WordlistPath:  wordlistPath,
		MaxCandidates: cfg.MaxCandidates,
	}, log)
	if err != nil {
		return err
	}

	countOnly, _ := cmd.Flags().GetBool("count")
	if countOnly {
		fmt.Fprintln(cmd.OutOrStdout(), len(result.Candidates))
	} else {
		sink := output.NewSink(cfg.Output, cmd.OutOrStdout())
		if err := sink.Write(result.Candidates); err != nil {
			return fmt.Errorf("failed to write candidates: %w", err)
		}
		if cfg.Output != "" {
			log.LogInfo(fmt.Sprintf("wrote %d candidates to %s", len(result.Candidates), cfg.Output))
		}
	}

	if cfg.History.Enabled {
		// History is best effort; the candidates are already written.
		if err := recordRun(cmd.Context(), cfg, args[0], wordlistPath, result); err != nil {
			log.LogWarn(fmt.Sprintf("failed to record run history: %v", err))
		}
	}
	return nil
}

func recordRun(ctx context.Context, cfg *config.Config, raw, wordlistPath string, result *expandResult) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	return store.RecordRun(ctx, &history.Run{
		Pattern:        raw,
		WordlistPath:   wordlistPath,
		WordCount:      result.WordCount,
		CandidateCount: len(result.Candidates),
		OutputPath:     cfg.Output,
		Duration:       result.Duration,
	})
}
