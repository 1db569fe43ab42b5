package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paritytech/bcts-sub004/digest"
	"github.com/paritytech/bcts-sub004/envelope"
	"github.com/paritytech/bcts-sub004/envelope/elide"
	"github.com/paritytech/bcts-sub004/envelope/proof"
	"github.com/paritytech/bcts-sub004/envelope/render"
	"github.com/paritytech/bcts-sub004/envelope/ur"
)

func readStdinLine() (string, error) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func readEnvelopeFromStdin() (envelope.Envelope, error) {
	line, err := readStdinLine()
	if err != nil {
		return envelope.Envelope{}, err
	}
	raw, err := hex.DecodeString(line)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("decoding hex input: %w", err)
	}
	return envelope.FromTaggedBinary(raw)
}

func printEnvelopeHex(e envelope.Envelope) error {
	bin, err := e.TaggedBinary()
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(bin))
	return nil
}

func parseDigestList(s string) (digest.Set, error) {
	set := make(digest.Set)
	if strings.TrimSpace(s) == "" {
		return set, nil
	}
	for _, part := range strings.Split(s, ",") {
		d, err := digest.FromHex(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parsing digest %q: %w", part, err)
		}
		set.Add(d)
	}
	return set, nil
}

func newEncodeCommand() *cobra.Command {
	var leaf string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a leaf envelope from a text value and print its tagged binary as hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envelope.NewLeaf(leaf)
			if err != nil {
				return err
			}
			return printEnvelopeHex(e)
		},
	}
	cmd.Flags().StringVar(&leaf, "leaf", "", "text value to wrap as a leaf envelope")
	return cmd
}

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode",
		Short: "Read a tagged binary hex envelope from stdin and print its compact diagnostic form",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readEnvelopeFromStdin()
			if err != nil {
				return err
			}
			fmt.Println(render.Diagnostic(e))
			return nil
		},
	}
}

func newTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Read a tagged binary hex envelope from stdin and print it as an indented tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readEnvelopeFromStdin()
			if err != nil {
				return err
			}
			fmt.Print(render.Tree(e))
			return nil
		},
	}
}

func newURCommand() *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "ur",
		Short: "Convert between tagged binary hex (stdin) and a ur:envelope/... URI (stdout), or the reverse with --decode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if decode {
				line, err := readStdinLine()
				if err != nil {
					return err
				}
				e, err := ur.FromUR(line)
				if err != nil {
					return err
				}
				return printEnvelopeHex(e)
			}
			e, err := readEnvelopeFromStdin()
			if err != nil {
				return err
			}
			uri, err := ur.UR(e)
			if err != nil {
				return err
			}
			fmt.Println(uri)
			return nil
		},
	}
	cmd.Flags().BoolVar(&decode, "decode", false, "read a UR from stdin and print its tagged binary hex")
	return cmd
}

func newSaltCommand() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Attach a salt assertion to the envelope read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readEnvelopeFromStdin()
			if err != nil {
				return err
			}
			var salted envelope.Envelope
			if length > 0 {
				salted, err = e.AddSaltWithLength(length)
			} else {
				salted, err = e.AddSalt()
			}
			if err != nil {
				return err
			}
			return printEnvelopeHex(salted)
		},
	}
	cmd.Flags().IntVar(&length, "length", 0, "exact salt length in bytes; 0 picks a proportional length")
	return cmd
}

func newElideCommand() *cobra.Command {
	var removeList, revealList, action, keyHex string
	cmd := &cobra.Command{
		Use:   "elide",
		Short: "Obscure parts of the envelope read from stdin by a remove-set or a reveal-set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (removeList == "") == (revealList == "") {
				return fmt.Errorf("specify exactly one of --remove or --reveal")
			}
			e, err := readEnvelopeFromStdin()
			if err != nil {
				return err
			}

			var act elide.Action
			switch action {
			case "", "elide":
				act = elide.Elide()
			case "compress":
				act = elide.CompressWith(6)
			case "encrypt":
				keyBytes, err := hex.DecodeString(keyHex)
				if err != nil || len(keyBytes) != 32 {
					return fmt.Errorf("--key must be 32 bytes of hex for --action encrypt")
				}
				var key [32]byte
				copy(key[:], keyBytes)
				act = elide.EncryptWith(key)
			default:
				return fmt.Errorf("unknown --action %q", action)
			}

			var out envelope.Envelope
			if removeList != "" {
				set, parseErr := parseDigestList(removeList)
				if parseErr != nil {
					return parseErr
				}
				out, err = elide.ElideRemoving(e, set, act)
			} else {
				set, parseErr := parseDigestList(revealList)
				if parseErr != nil {
					return parseErr
				}
				out, err = elide.ElideRevealing(e, set, act)
			}
			if err != nil {
				return err
			}
			return printEnvelopeHex(out)
		},
	}
	cmd.Flags().StringVar(&removeList, "remove", "", "comma-separated hex digests to obscure")
	cmd.Flags().StringVar(&revealList, "reveal", "", "comma-separated hex digests to keep visible")
	cmd.Flags().StringVar(&action, "action", "elide", "obscure action: elide, encrypt, or compress")
	cmd.Flags().StringVar(&keyHex, "key", "", "32-byte hex content key, required for --action encrypt")
	return cmd
}

func newProveCommand() *cobra.Command {
	var targets string
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Build an inclusion proof for target digests under the envelope read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readEnvelopeFromStdin()
			if err != nil {
				return err
			}
			set, err := parseDigestList(targets)
			if err != nil {
				return err
			}
			p, err := proof.ProveContainsSet(e, set)
			if err != nil {
				return err
			}
			fmt.Println("root:", p.Root.Hex())
			return printEnvelopeHex(p.Envelope)
		},
	}
	cmd.Flags().StringVar(&targets, "targets", "", "comma-separated hex digests to prove")
	return cmd
}

func newVerifyCommand() *cobra.Command {
	var root, targets string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Confirm a proof envelope (read from stdin) proves target digests under --root",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readEnvelopeFromStdin()
			if err != nil {
				return err
			}
			rootDigest, err := digest.FromHex(root)
			if err != nil {
				return err
			}
			set, err := parseDigestList(targets)
			if err != nil {
				return err
			}
			ok, err := proof.ConfirmContainsSet(rootDigest, proof.Proof{Root: rootDigest, Envelope: e}, set)
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "expected root digest, hex")
	cmd.Flags().StringVar(&targets, "targets", "", "comma-separated hex digests to confirm")
	return cmd
}
