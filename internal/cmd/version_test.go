package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommand_IsRegistered(t *testing.T) {
	found, _, err := rootCmd.Find([]string{"version"})
	assert.NoError(t, err)
	assert.Equal(t, "version", found.Name())
}
