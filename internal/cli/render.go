package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/critterbio/critter/internal/document"
	"github.com/critterbio/critter/internal/prior"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Output string // output file path
}

// RenderResult holds the rendered document and summary statistics.
type RenderResult struct {
	Priors   int    `json:"priors"`
	Sliced   int    `json:"sliced"`
	Document string `json:"document"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <model-dir>",
		Short: "Render model definitions to XML fragments",
		Long: `Render CUE prior definitions to the XML fragment sections consumed
by the inference engine: prior declarations, state nodes, loggers, and
slicing support (slice functions, rate-change times, slice loggers).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runRender(opts *RenderOptions, modelDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	// Rendering requires a fully valid model; fail fast on the first error.
	loadResult, loadErrors := LoadModel(modelDir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputRenderError(formatter, loadErr.Code, loadErr.Message)
		}
		return outputRenderError(formatter, ErrCodeGeneric, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, modelDir)

	priors := make([]*prior.Prior, 0, len(loadResult.Priors))
	sliced := 0
	for _, def := range loadResult.Priors {
		formatter.VerboseLog("Constructing prior: %s", def.Role)
		p, err := prior.ForRole(def.Role, def.Config)
		if err != nil {
			return outputRenderError(formatter, ErrCodeCompileFailed,
				fmt.Sprintf("prior.%s: %v", def.Role, err))
		}
		if p.Sliced() {
			sliced++
		}
		priors = append(priors, p)
	}

	doc, err := document.Build(priors)
	if err != nil {
		return outputRenderError(formatter, ErrCodeRenderFailed, err.Error())
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(doc), 0644); err != nil {
			return outputRenderError(formatter, ErrCodeWriteFailed,
				fmt.Sprintf("writing output file: %v", err))
		}
		formatter.VerboseLog("Wrote %d byte(s) to %s", len(doc), opts.Output)
	}

	if formatter.Format == "json" {
		return formatter.Success(RenderResult{
			Priors:   len(priors),
			Sliced:   sliced,
			Document: doc,
		})
	}
	if opts.Output == "" {
		fmt.Fprint(formatter.Writer, doc)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "Rendered %d prior(s) to %s\n", len(priors), opts.Output)
	return nil
}

func outputRenderError(formatter *OutputFormatter, code, message string) error {
	if err := formatter.Error(code, message, nil); err != nil {
		return err
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("[%s] %s", code, message))
}
