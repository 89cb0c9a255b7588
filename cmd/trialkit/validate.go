package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	trialkit "github.com/goliatone/go-trialkit"
	pkgdescriptor "github.com/goliatone/go-trialkit/pkg/descriptor"
)

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Check descriptor files without conducting a trial",
	Long: `Loads and parses each descriptor, then runs the same configuration
checks a collector applies before opening a session: structural schema
validation, field and rule validation, and rule-kind resolution against the
built-in evaluators.`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateDescriptors,
}

func validateDescriptors(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	loader := trialkit.NewLoader()
	parser := trialkit.NewParser()
	checker := trialkit.NewCollector()

	failed := false
	for _, path := range args {
		src := parseSource(path)
		if src == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: empty path\n", path)
			failed = true
			continue
		}

		doc, err := loader.Load(ctx, src)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed = true
			continue
		}

		descriptor, err := parser.Parse(ctx, doc)
		if err != nil {
			reportParseError(cmd, path, err)
			failed = true
			continue
		}

		if _, err := checker.Begin(descriptor); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed = true
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d fields, %d rules)\n",
			path, len(descriptor.Fields), len(descriptor.Rules))
	}

	if failed {
		return errors.New("validation failed")
	}
	return nil
}

func reportParseError(cmd *cobra.Command, path string, err error) {
	var docErr *pkgdescriptor.InvalidDocumentError
	if errors.As(err, &docErr) {
		for _, issue := range docErr.Issues {
			if issue.Path != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s -> %s\n", path, issue.Path, issue.Message)
				continue
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, issue.Message)
		}
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
}
