package main

import (
	"fmt"
	"io"
)

// printOptions reports the options of a run before the file is rewritten
func printOptions(w io.Writer, rc RunConfig) {
	fmt.Fprintln(w, "\nPPoTD - Putting Priors on Tip Dates")
	fmt.Fprintln(w, "Preparing to add required sections to the BEAUti .xml file.")
	fmt.Fprintln(w, "\nThe following options will be used:")
	fmt.Fprintln(w, "- Prior distribution:", rc.Distribution.Name)
	for _, p := range rc.Params {
		fmt.Fprintf(w, "\t - %s = %s\n", p.Name, FormatFloat(p.Value))
	}
	fmt.Fprintf(w, "\t - offset = %s\n", FormatFloat(rc.Offset))

	if rc.Distribution.Name == "log-normal" {
		if rc.RealSpace {
			fmt.Fprintln(w, "\t - Mean is specified in real space.")
		} else {
			fmt.Fprintln(w, "\t - Mean is specified in log-transformed space.")
		}
	}
	fmt.Fprintf(w, "\nTip dates are interpreted as %s.\n", TimeDescriptions[rc.Time])
	fmt.Fprintln(w, "\nInput BEAUti .xml file:", rc.Input.Display())
	fmt.Fprintln(w, "\nOutput BEAUti .xml file:", rc.Output.Display())
}

// printTaxa reports how many taxa will receive fragments
func printTaxa(w io.Writer, rc RunConfig, taxa []string) {
	fmt.Fprintln(w, "\nThe input BEAUti .xml file seems to be in order...")
	if rc.Sequences != nil || rc.FilterTree != nil {
		fmt.Fprintf(w, "\nAdding prior distributions, sample operators and logger entries for the tip dates of %d sequences provided in the input file.\n", len(taxa))
	} else {
		fmt.Fprintf(w, "\nAdding prior distributions, sample operators and logger entries for the tip dates of all %d dated sequences found in the BEAUti .xml file.\n", len(taxa))
	}
}

// printDone reports where the updated file went
func printDone(w io.Writer, rc RunConfig, stats RewriteStats) {
	if stats.Anchors() == 0 {
		fmt.Fprintln(w, "\nNo prior, logger or run sections were found; the file was copied unchanged.")
	}
	fmt.Fprintln(w, "\nUpdated BEAUti .xml file was saved to", rc.Output.Display())
}
