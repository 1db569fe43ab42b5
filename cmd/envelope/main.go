// Command envelope is a small command-line client over the envelope core:
// encode a leaf value, decode/render a tagged binary envelope, salt it,
// elide parts of it, transport it as a UR, and build or confirm inclusion
// proofs. It exists mainly as a worked example of wiring the library
// end-to-end, in the spirit of the teacher's own operator-facing tooling.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paritytech/bcts-sub004/internal/telemetry"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		telemetry.Log.Errorf("envelope: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "envelope",
		Short: "Inspect and transform Gordian-style envelopes",
	}

	root.AddCommand(
		newEncodeCommand(),
		newDecodeCommand(),
		newTreeCommand(),
		newURCommand(),
		newSaltCommand(),
		newElideCommand(),
		newProveCommand(),
		newVerifyCommand(),
	)
	return root
}
