package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
}

// legacyFlags are the historical multi-letter single dash flags,
// which pflag cannot express as shorthands
var legacyFlags = map[string]string{
	"-p1": "--" + flagParameter1,
	"-p2": "--" + flagParameter2,
	"-po": "--" + flagParametero,
}

// normalizeArgs rewrites -p1, -p2 and -po (and their -p1=value forms) to
// the long flag names. Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		name, value, hasValue := arg, "", false
		if j := strings.Index(arg, "="); j > 0 {
			name, value, hasValue = arg[:j], arg[j+1:], true
		}
		if long, ok := legacyFlags[name]; ok {
			if hasValue {
				out = append(out, long+"="+value)
			} else {
				out = append(out, long)
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "tip-date-priors [flags] inputFile",
		Short: "Add tip date prior sampling to BEAUti .xml files",
		Long: `Adds prior distributions, sample operators and logger entries for each
dated sequence of a BEAUti .xml file.

The input file should be generated in BEAUti by importing the alignment,
loading the tip dates (before the present or since the past) and setting the
site/clock model, priors and MCMC options. Do not create priors for the tip
dates by hand, and do not name other taxon sets "tip.<taxon>".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Verbose {
				log.SetLevel(log.DebugLevel)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			runner := NewRunner(cmd.OutOrStdout())
			rc, err := ResolveCommand(ctx, cmd, opts, runner.Stores, args[0])
			if err != nil {
				return err
			}
			_, err = runner.Run(ctx, rc)
			return err
		},
	}
	cmd.SetOut(out)
	opts.BindFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(flagSequences, flagFilterTree)
	return cmd
}

func main() {
	cmd := newRootCmd(os.Stdout)
	cmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if ie, ok := err.(InjectError); ok {
			log.WithFields(log.Fields{"code": ie.Code, "location": ie.Location}).Debug("Run failed")
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
