// Command b2sum prints the BLAKE2b or BLAKE2s digest of a file.
//
//	b2sum --in ./Hallo.txt [blake2b|blake2s]
//
// Every flag can also be set from the environment with a B2SUM_ prefix, e.g.
// B2SUM_IN=./Hallo.txt.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// errUnknownCommand is returned, after the usage text is printed, when the
// command is neither blake2b nor blake2s.
var errUnknownCommand = errors.New("unknown command")

func main() {
	root := newRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "b2sum [flags] [blake2b|blake2s]",
		Short: "Print the BLAKE2 digest of a file",
		Long: `
Hashes the file given with --in and prints the digest as lowercase hex.
Without a command the file is hashed with BLAKE2b.

    $ b2sum --in ./Hallo.txt
    $ b2sum --in ./Hallo.txt --size 32 blake2s
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, args []string) error {
			return setup(v, command)
		},
		Args: cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if len(args) > 0 {
				fmt.Fprint(out, command.UsageString())
				return errors.Wrapf(errUnknownCommand, "%q", args[0])
			}
			return run(algoBlake2b, v, out)
		},
	}

	addFlags(root.PersistentFlags())

	for _, algo := range []*algorithm{algoBlake2b, algoBlake2s} {
		algo := algo // per-iteration copy; go directive is below 1.22
		root.AddCommand(&cobra.Command{
			Use:     algo.name,
			Aliases: algo.aliases,
			Short:   "Hash the file with " + algo.title,
			Args:    cobra.NoArgs,
			RunE: func(command *cobra.Command, args []string) error {
				return run(algo, v, out)
			},
		})
	}
	return root
}

func addFlags(flags *pflag.FlagSet) {
	flags.StringP("in", "i", "", "File to hash (required)")
	flags.IntP("size", "s", 0, "Digest size in bytes, 0 for the algorithm maximum")
	flags.String("key", "", "Hex encoded key, turns the hash into a MAC")
	flags.String("salt", "", "Hex encoded salt")
	flags.String("personal", "", "Hex encoded personalization string")
	flags.Int("chunk", 0, "Read size in bytes, 0 for the algorithm default")
	flags.String("format", formatHex, "Output format: hex or multihash")
	flags.BoolP("verbose", "v", false, "Log debug information to stderr")
}

// setup binds the flags of the running command to v and configures logging.
func setup(v *viper.Viper, command *cobra.Command) error {
	if err := v.BindPFlags(command.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("B2SUM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if v.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	return nil
}
