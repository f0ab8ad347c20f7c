package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/critterbio/critter/internal/prior"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                    `json:"valid"`
	Priors int                     `json:"priors"`
	Errors []prior.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <model-dir>",
		Short: "Validate model definitions without rendering",
		Long: `Validate CUE prior definitions without rendering fragments.

Compiles every prior in the model and runs schema validation, reporting
all configuration errors at once for fast authoring feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, modelDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	// Use shared loader with collect-all mode so one pass reports every
	// definition problem.
	loadResult, loadErrors := LoadModel(modelDir, LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message)
		}
		return outputValidateError(formatter, ErrCodeGeneric, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, modelDir)

	var validationErrors []prior.ValidationError
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			validationErrors = append(validationErrors, prior.ValidationError{
				Field:   "load",
				Message: loadErr.Message,
				Code:    loadErr.Code,
			})
		}
	}

	for _, def := range loadResult.Priors {
		formatter.VerboseLog("Validating prior: %s", def.Role)
		validationErrors = append(validationErrors, validateDef(def.Role, def.Config)...)
	}

	if len(validationErrors) > 0 {
		result := ValidationResult{Valid: false, Priors: len(loadResult.Priors), Errors: validationErrors}
		if formatter.Format == "json" {
			if err := formatter.Success(result); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(formatter.Writer, "Invalid: %d error(s)\n", len(validationErrors))
			for _, verr := range validationErrors {
				fmt.Fprintf(formatter.Writer, "  %s\n", verr.Error())
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(validationErrors)))
	}

	result := ValidationResult{Valid: true, Priors: len(loadResult.Priors)}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "Valid: %d prior(s)\n", result.Priors)
	return nil
}

// validateDef runs registry resolution and schema validation for one
// compiled prior definition, mapping both into field errors.
func validateDef(role prior.Role, cfg prior.Config) []prior.ValidationError {
	_, err := prior.ForRole(role, cfg)
	if err == nil {
		return nil
	}

	var verrs prior.ValidationErrors
	if errors.As(err, &verrs) {
		scoped := make([]prior.ValidationError, len(verrs))
		for i, verr := range verrs {
			scoped[i] = prior.ValidationError{
				Field:   fmt.Sprintf("prior.%s.%s", role, verr.Field),
				Message: verr.Message,
				Code:    verr.Code,
			}
		}
		return scoped
	}

	var cerr *prior.ConfigError
	if errors.As(err, &cerr) {
		return []prior.ValidationError{{
			Field:   fmt.Sprintf("prior.%s", role),
			Message: cerr.Error(),
			Code:    string(cerr.Code),
		}}
	}

	return []prior.ValidationError{{
		Field:   fmt.Sprintf("prior.%s", role),
		Message: err.Error(),
		Code:    ErrCodeGeneric,
	}}
}

func outputValidateError(formatter *OutputFormatter, code, message string) error {
	if err := formatter.Error(code, message, nil); err != nil {
		return err
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("[%s] %s", code, message))
}
