package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validModel = `
package model

prior: origin: {
	distribution: [{kind: "gamma", alpha: 2.0, beta: 40.0, id: "Gamma.0"}]
	initial: [60.0]
	lower:   0.0
}
prior: reproductiveNumber: {
	distribution: [{kind: "lognormal", mean: 0.0, sd: 1.0, id: "LogNormal.0"}]
	initial: [2.0]
	lower:   0.0
}
`

const invalidModel = `
package model

prior: clockRate: {
	distribution: [{kind: "gamma", alpha: 2.0, beta: 40.0, id: "Gamma.0"}]
	initial: [0.001]
	sliced:  true
	intervals: [0.0, 100.0]
}
`

func writeModel(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "model.cue"), []byte(content), 0644)
	require.NoError(t, err)
	return dir
}

func TestValidateValidModel(t *testing.T) {
	dir := writeModel(t, validModel)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Valid: 2 prior(s)")
}

func TestValidateValidModelJSON(t *testing.T) {
	dir := writeModel(t, validModel)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateNonExistentDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/directory/path"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E005") // ErrCodeNotFound
	assert.Contains(t, buf.String(), "not found")
}

func TestValidateEmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{tmpDir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E003")
	assert.Contains(t, buf.String(), "no CUE files found")
}

func TestValidateInvalidSlicedRole(t *testing.T) {
	dir := writeModel(t, invalidModel)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "Invalid: 1 error(s)")
	assert.Contains(t, output, "E206")
	assert.Contains(t, output, "clockRate")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	model := `
package model

prior: clockRate: {
	distribution: [{kind: "gamma", alpha: 2.0, beta: 40.0}]
	initial: [0.001]
	sliced:  true
}
prior: rateMatrix: {
	distribution: [{kind: "gamma", alpha: 2.0, beta: 40.0}]
	initial: []
}
`
	dir := writeModel(t, model)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status) // structured result, errors in payload

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result ValidationResult
	require.NoError(t, json.Unmarshal(payload, &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "E206", result.Errors[0].Code)
	assert.Equal(t, "E203", result.Errors[1].Code)
}
