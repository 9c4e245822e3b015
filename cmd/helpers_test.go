package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// executeCommand runs a fresh root command with the given stdin and args,
// returning the combined out/err stream. Command construction mirrors
// production: config and logging bootstrap run through PersistentPreRunE.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}
