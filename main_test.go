package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
)

func TestScoreCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(_yamlForm), 0600))

	t.Run("summary", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"score", path})
		defer func() { printCells = false }()

		assert.NoError(t, rootCmd.Execute())

		var summary map[string]interface{}
		assert.NoError(t, sonic.Unmarshal(out.Bytes(), &summary))
		assert.Equal(t, false, summary["isValid"])
		assert.Equal(t, float64(1), summary["possiblePoints"])
	})

	t.Run("with cells", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"score", "--cells", path})
		defer func() { printCells = false }()

		assert.NoError(t, rootCmd.Execute())

		var report map[string]interface{}
		assert.NoError(t, sonic.Unmarshal(out.Bytes(), &report))
		assert.Contains(t, report, "score")
		cells := report["cells"].(map[string]interface{})
		assert.Equal(t, "apples", cells["A1"].(map[string]interface{})["val"])
	})

	t.Run("missing file", func(t *testing.T) {
		rootCmd.SetArgs([]string{"score", filepath.Join(t.TempDir(), "missing.yaml")})

		assert.Error(t, rootCmd.Execute())
	})
}
