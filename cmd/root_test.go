package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Help(t *testing.T) {
	// Capture output
	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"--help"})
	err := rootCmd.Execute()
	assert.NoError(t, err)

	output := b.String()
	assert.Contains(t, output, "TaskDeck is a file-backed task tracker")
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "menu")
	assert.Contains(t, output, "export")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.3.0", version)
}

func TestGetTaskFilePath(t *testing.T) {
	tmpDir := setupTestConfig(t)
	InitConfig()

	want := filepath.Join(tmpDir, ".taskdeck", "tasks", "tasks.json")
	assert.Equal(t, want, GetTaskFilePath())
}
