package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trajview/internal/config"
	"trajview/internal/projection"
	"trajview/internal/trajectory"
)

const sunEarth = `{"Objects":["Sun","Earth"],"Dimensions":3,"Trajectory":[0,0,0, 1,1,1, 2,2,2, 3,3,3]}`

func writeTrajectory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), trajectory.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{errors.New("boom"), exitFailure},
		{fmt.Errorf("wrapped: %w", trajectory.ErrInvalidInput), exitInvalidInput},
		{fmt.Errorf("wrapped: %w", trajectory.ErrMalformedFile), exitMalformedFile},
		{fmt.Errorf("wrapped: %w", trajectory.ErrDegenerateConfig), exitDegenerateConfig},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), "%v", tt.err)
	}
}

func TestOpenDataset_Errors(t *testing.T) {
	logger = zap.NewNop()

	_, err := openDataset(writeTrajectory(t, `{"Objects":["Sun","Earth"],"Dimensions":3,"Trajectory":[1,2,3,4]}`))
	assert.Equal(t, exitInvalidInput, exitCode(err))

	_, err = openDataset(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, exitMalformedFile, exitCode(err))

	_, err = openDataset(writeTrajectory(t, `{"Objects":[],"Dimensions":3,"Trajectory":[]}`))
	assert.Equal(t, exitDegenerateConfig, exitCode(err))
}

func TestViewerOptions(t *testing.T) {
	logger = zap.NewNop()
	ds, err := openDataset(writeTrajectory(t, sunEarth))
	require.NoError(t, err)

	c := config.DefaultConfig()
	c.Select = "Earth"
	c.Axes = "2,1,0"
	opts, err := viewerOptions(c, ds)
	require.NoError(t, err)
	assert.Equal(t, 1, opts.Selection.Index())
	require.NotNil(t, opts.Axes)
	assert.Equal(t, projection.AxisMap{2, 1, 0}, *opts.Axes)
	assert.Equal(t, "trajectoryData.json", opts.Title)

	c.Select = "7"
	_, err = viewerOptions(c, ds)
	assert.Equal(t, exitInvalidInput, exitCode(err))

	c.Select = "all"
	c.Axes = "0,1"
	_, err = viewerOptions(c, ds)
	assert.Equal(t, exitInvalidInput, exitCode(err))
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "")
	cmd.Flags().StringVarP(&selectFlag, "select", "s", "", "")
	cmd.Flags().StringVar(&axesFlag, "axes", "", "")
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "")
	require.NoError(t, cmd.ParseFlags([]string{"-f", "flag.json", "--watch"}))

	c := config.DefaultConfig()
	c.Select = "Sun"
	applyFlags(cmd, c)

	assert.Equal(t, "flag.json", c.Input)
	assert.True(t, c.Watch)
	assert.Equal(t, "Sun", c.Select, "unset flags must not override the config")
}

func TestSummaryMarkdown(t *testing.T) {
	logger = zap.NewNop()
	ds, err := openDataset(writeTrajectory(t, sunEarth))
	require.NoError(t, err)

	md := summaryMarkdown("trajectoryData.json", ds)
	assert.Contains(t, md, "**Objects:** 2 (Sun, Earth)")
	assert.Contains(t, md, "**Samples:** 2")
	assert.Contains(t, md, "| Sun | (0, 0, 0) | (2, 2, 2) | (0, 0, 0) | (2, 2, 2) |")
	assert.Contains(t, md, "| Earth | (1, 1, 1) | (3, 3, 3) | (1, 1, 1) | (3, 3, 3) |")
}

func TestSummaryMarkdown_Empty(t *testing.T) {
	traj, err := trajectory.Deinterleave(nil, 1, 3)
	require.NoError(t, err)

	md := summaryMarkdown("empty.json", &trajectory.Dataset{Names: []string{"Sun"}, Trajectories: traj})
	assert.Contains(t, md, "No samples recorded")
	assert.NotContains(t, md, "| Object |")
}

func TestInspectCommand(t *testing.T) {
	path := writeTrajectory(t, sunEarth)
	t.Setenv("TRAJVIEW_INPUT", "")
	t.Setenv("TRAJVIEW_LOG_LEVEL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"inspect", "-f", path, "-c", filepath.Join(t.TempDir(), "none.yaml")})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())
	output := out.String()
	assert.True(t, strings.Contains(output, "Sun") && strings.Contains(output, "Earth"), output)
}

func TestRootCommand_InvalidInputExitsBeforeViewer(t *testing.T) {
	path := writeTrajectory(t, `{"Objects":["Sun","Earth"],"Dimensions":3,"Trajectory":[1,2,3,4,5]}`)
	t.Setenv("TRAJVIEW_INPUT", "")
	t.Setenv("TRAJVIEW_LOG_LEVEL", "")

	rootCmd.SetArgs([]string{"-f", path, "-c", filepath.Join(t.TempDir(), "none.yaml")})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.Equal(t, exitInvalidInput, exitCode(err))
	assert.Contains(t, err.Error(), "not divisible")
}

func TestConfigInit(t *testing.T) {
	t.Setenv("TRAJVIEW_INPUT", "")
	t.Setenv("TRAJVIEW_SELECT", "")
	t.Setenv("TRAJVIEW_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "conf", config.DefaultPath)
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)
	defer func() { forceFlag = false }()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init", "-c", path, "-f", "outer.json"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "wrote "+path)

	saved, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "outer.json", saved.Input)

	rootCmd.SetArgs([]string{"config", "init", "-c", path, "-f", "inner.json"})
	err = rootCmd.Execute()
	assert.ErrorIs(t, err, config.ErrConfigExists)
	assert.Equal(t, exitFailure, exitCode(err))

	rootCmd.SetArgs([]string{"config", "init", "-c", path, "-f", "inner.json", "--force"})
	require.NoError(t, rootCmd.Execute())
	saved, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "inner.json", saved.Input)
}
