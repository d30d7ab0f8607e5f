package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCommandPrints(t *testing.T) {
	var buf bytes.Buffer

	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	require.Contains(t, buf.String(), "version")
}
