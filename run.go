package main

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"

	log "github.com/sirupsen/logrus"
)

// Runner carries the collaborators of a run
type Runner struct {
	Stores    *Stores
	Extractor Extractor
	Mailer    Mailer
	Out       io.Writer
}

// NewRunner returns a runner backed by the default stores and, when the
// environment configures it, Mailgun
func NewRunner(out io.Writer) *Runner {
	r := &Runner{
		Stores: DefaultStores(),
		Out:    out,
	}
	if mg := MailgunFromEnv(); mg != nil {
		r.Mailer = mg
	}
	return r
}

// Run reads the input, injects the tip date fragments and writes the output.
// Nothing is written to the output location unless every step before it
// succeeded.
func (r *Runner) Run(ctx context.Context, rc RunConfig) (*RunRecord, error) {
	out := r.Out
	if out == nil {
		out = ioutil.Discard
	}

	rr, err := NewRunRecord(rc)
	if err != nil {
		return nil, NewError(CodeConfig, rc.Input.Raw, "Error generating run id.", err)
	}
	logger := log.WithField("run_id", rr.RunID)

	data, err := r.Stores.Read(ctx, rc.Input)
	if err != nil {
		return nil, NewError(CodeInputRead, rc.Input.Raw, "Input file not found. Please check the path/filename and try again.", err)
	}
	xml := string(data)
	logger.WithField("input", rc.Input.Raw).Info("Read input file")

	ex := r.Extractor
	if ex == nil {
		ex = PatternExtractor{Location: rc.Input.Raw}
	}
	treeID, taxa, err := ex.Extract(xml, rc.Time)
	if err != nil {
		return nil, err
	}
	logger.WithFields(log.Fields{"tree_id": treeID, "taxa": len(taxa)}).Info("Found dated sequences")

	if filter, loc := r.filter(rc); filter != nil {
		ids, err := filter.IDs(ctx)
		if err != nil {
			return nil, err
		}
		if taxa, err = ApplyFilter(taxa, ids, loc); err != nil {
			return nil, err
		}
		logger.WithFields(log.Fields{"filter": loc, "taxa": len(taxa)}).Info("Restricted to filtered sequences")
	}

	if rc.Estimate {
		logger.Warn("Parameter estimation is not supported yet, the parameters are written with estimate=\"false\"")
	}

	printOptions(out, rc)
	printTaxa(out, rc, taxa)

	fs := GenerateFragmentSet(taxa, treeID, rc.Distribution, rc.Params, rc.Offset)

	var buf bytes.Buffer
	stats, err := Rewrite(&buf, xml, fs)
	if err != nil {
		return nil, NewError(CodeWrite, rc.Output.Raw, "Unable to assemble the updated file.", err)
	}
	logger.WithFields(log.Fields{
		"lines":   stats.Lines,
		"priors":  stats.Priors,
		"loggers": stats.Loggers,
		"runs":    stats.Runs,
	}).Debug("Rewrote input")

	if err := r.Stores.Write(ctx, rc.Output, buf.Bytes(), "text/xml"); err != nil {
		return nil, NewError(CodeWrite, rc.Output.Raw, "Unable to write the updated BEAUti .xml file.", err)
	}

	rr.Complete(treeID, taxa, stats)

	if rc.Record != nil {
		if err := writeRunRecord(ctx, r.Stores, *rc.Record, rr); err != nil {
			return rr, NewError(CodeWrite, rc.Record.Raw, "Unable to write run record.", err)
		}
	}

	printDone(out, rc, stats)

	if rc.Notify != "" {
		NotifyDone(ctx, r.Mailer, rc.Notify, rr)
	}

	logger.Info("Completed run")
	return rr, nil
}

func (r *Runner) filter(rc RunConfig) (TaxonFilter, string) {
	switch {
	case rc.Sequences != nil:
		return SequenceFilter{Location: *rc.Sequences, Store: r.Stores}, rc.Sequences.Raw
	case rc.FilterTree != nil:
		return TreeFilter{Location: *rc.FilterTree, Store: r.Stores}, rc.FilterTree.Raw
	}
	return nil, ""
}
