package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCommand(t *testing.T) {
	t.Run("stats command should be registered", func(t *testing.T) {
		found, _, err := rootCmd.Find([]string{"stats"})
		assert.NoError(t, err)
		assert.Equal(t, "stats", found.Name())
	})

	t.Run("reports min/max/mean gap", func(t *testing.T) {
		sc := newStatsCommand()
		buf := new(bytes.Buffer)
		sc.SetOut(buf)
		sc.SetArgs([]string{"* * * * *", "--count", "10"})

		require.NoError(t, sc.Execute())
		output := buf.String()
		assert.Contains(t, output, "min gap")
		assert.Contains(t, output, "max gap")
		assert.Contains(t, output, "mean gap")
	})

	t.Run("rejects count below two", func(t *testing.T) {
		sc := newStatsCommand()
		sc.SetArgs([]string{"* * * * *", "--count", "1"})
		assert.Error(t, sc.Execute())
	})
}
