package main

import (
	"bytes"
	"context"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
	log "github.com/sirupsen/logrus"
)

// Extractor finds the tree id and the dated taxa of a BEAUti file
type Extractor interface {
	Extract(xml, timeDirection string) (treeID string, taxa []string, err error)
}

// PatternExtractor matches the file as text, the same way BEAUti output is
// searched by hand. It never parses the XML tree.
type PatternExtractor struct {
	Location string
}

// Extract implements Extractor
func (pe PatternExtractor) Extract(xml, timeDirection string) (string, []string, error) {
	treeID, err := pe.TreeID(xml)
	if err != nil {
		return "", nil, err
	}
	taxa, err := pe.Taxa(xml, timeDirection)
	if err != nil {
		return "", nil, err
	}
	return treeID, taxa, nil
}

// TreeID returns the id of the first tree declaration
func (pe PatternExtractor) TreeID(xml string) (string, error) {
	m := treeIDPattern.FindStringSubmatch(xml)
	if m == nil {
		return "", NewError(CodeTreeID, pe.Location, "ERROR!\nFailed to find tree id in BEAUti .xml file.\n"+
			"Please check if .xml file was generated correctly.", nil)
	}
	return m[1], nil
}

// Taxa returns the ids of the date trait for the given direction, in file
// order. Duplicates are kept.
func (pe PatternExtractor) Taxa(xml, timeDirection string) ([]string, error) {
	re, ok := DateSectionPatterns[timeDirection]
	if !ok {
		return nil, NewError(CodeConfig, pe.Location, "Unknown time direction: "+timeDirection, nil)
	}
	m := re.FindStringSubmatch(xml)
	if m == nil {
		return nil, NewError(CodeDateSection, pe.Location, "ERROR!\nCould not find any dated sequences in BEAUti .xml file.\n"+
			"Please check if BEAUti .xml file was generated correctly.\n"+
			"Possible causes:\n - Tip dates were not added in BEAUti.\n"+
			" - Dates were specified as \"before the present\" or \"since some time in the past\" "+
			"in the .xml file, but a different direction argument was provided as an input argument.", nil)
	}

	matches := taxonPattern.FindAllStringSubmatch(m[1], -1)
	taxa := make([]string, len(matches))
	for i, tm := range matches {
		taxa[i] = tm[1]
	}
	return taxa, nil
}

// TaxonFilter yields the ids a run should be restricted to
type TaxonFilter interface {
	IDs(ctx context.Context) ([]string, error)
}

// SequenceFilter reads one taxon id per line
type SequenceFilter struct {
	Location Location
	Store    ObjectStore
}

// IDs implements TaxonFilter
func (sf SequenceFilter) IDs(ctx context.Context) ([]string, error) {
	data, err := sf.Store.Read(ctx, sf.Location)
	if err != nil {
		return nil, NewError(CodeFilterRead, sf.Location.Raw, "Failed to open input sequence file. "+
			"Please check the path/filename and try again.", err)
	}
	return splitLines(string(data)), nil
}

// TreeFilter keeps the taxa that are tips of a newick tree
type TreeFilter struct {
	Location Location
	Store    ObjectStore
}

// IDs implements TaxonFilter
func (tf TreeFilter) IDs(ctx context.Context) ([]string, error) {
	data, err := tf.Store.Read(ctx, tf.Location)
	if err != nil {
		return nil, NewError(CodeFilterRead, tf.Location.Raw, "Failed to open input tree file. "+
			"Please check the path/filename and try again.", err)
	}
	t, err := newick.NewParser(bytes.NewReader(data)).Parse()
	if err != nil {
		return nil, NewError(CodeFilterRead, tf.Location.Raw, "Failed to parse input tree file as newick.", err)
	}
	return t.AllTipNames(), nil
}

// ApplyFilter replaces taxa with ids when every id is a known taxon
func ApplyFilter(taxa, ids []string, location string) ([]string, error) {
	var unknown []string
	for _, id := range ids {
		if Index(taxa, id) == -1 {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		log.WithField("unknown", unknown).Debug("Filter ids missing from the date trait")
		return nil, NewError(CodeFilterMismatch, location, "Provided sequence file contained sequence id's which "+
			"are not present in the BEAUti .xml file. Please try again.", nil)
	}
	return ids, nil
}

// Index returns the position of t in vs or -1
func Index(vs []string, t string) int {
	for i, v := range vs {
		if v == t {
			return i
		}
	}
	return -1
}

// splitLines breaks text on any newline convention, dropping only a final
// empty line
func splitLines(text string) []string {
	text = strings.Replace(text, "\r\n", "\n", -1)
	text = strings.Replace(text, "\r", "\n", -1)
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
