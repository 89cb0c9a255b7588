package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	trialkit "github.com/goliatone/go-trialkit"
	"github.com/goliatone/go-trialkit/pkg/collector"
	pkgdescriptor "github.com/goliatone/go-trialkit/pkg/descriptor"
	"github.com/goliatone/go-trialkit/pkg/prompt"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

// bypassEnv toggles rule bypass when the flag is not given. The flag wins.
const bypassEnv = "TRIALKIT_BYPASS_VALIDATION"

const remoteTimeout = 30 * time.Second

var (
	runSource   string
	runMode     string
	runOutput   string
	runBypass   bool
	runPageSize int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Conduct one trial and print its response record",
	Long: `Loads the descriptor, prompts for every field, and submits until the
responses pass the descriptor's rules. The completed record prints to stdout
(or --output) as JSON; everything diagnostic goes to stderr.`,
	RunE: runTrial,
}

func init() {
	runCmd.Flags().StringVarP(&runSource, "source", "s", "", "descriptor path or URL (required)")
	runCmd.Flags().StringVar(&runMode, "mode", "", "override the serialization mode: object or array")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "write the record to this file instead of stdout")
	runCmd.Flags().BoolVar(&runBypass, "bypass-validation", false, "accept submissions without evaluating rules")
	runCmd.Flags().IntVar(&runPageSize, "page-size", 0, "cap the choices shown per select prompt")
	_ = runCmd.MarkFlagRequired("source")
}

func runTrial(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	src := parseSource(runSource)
	if src == nil {
		return fmt.Errorf("invalid source: %q", runSource)
	}

	loader := trialkit.NewLoader(pkgdescriptor.WithHTTPFallback(remoteTimeout))
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return err
	}
	descriptor, err := trialkit.NewParser().Parse(ctx, doc)
	if err != nil {
		return err
	}

	if runMode != "" {
		mode, err := parseMode(runMode)
		if err != nil {
			return err
		}
		descriptor.Mode = mode
	}

	bypass := runBypass
	if !cmd.Flags().Changed("bypass-validation") {
		bypass = envBool(bypassEnv)
	}
	if bypass {
		logger.Warn("validation bypass enabled", zap.String("source", src.Location()))
	}

	runner := prompt.NewRunner(
		prompt.WithCollector(collector.New(
			collector.WithBypass(bypass),
			collector.WithLogger(logger),
		)),
		prompt.WithPageSize(runPageSize),
	)

	rec, err := runner.Run(ctx, descriptor)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	if runOutput != "" {
		if err := os.WriteFile(runOutput, payload, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("record written",
			zap.String("path", runOutput),
			zap.String("session_id", rec.SessionID))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	return nil
}

func parseSource(raw string) pkgdescriptor.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgdescriptor.SourceFromURL(path)
	}
	return pkgdescriptor.SourceFromFile(path)
}

func parseMode(raw string) (trial.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "object":
		return trial.ModeObject, nil
	case "array":
		return trial.ModeArray, nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected object or array)", raw)
	}
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
