package main

import (
	"math"
	"strconv"
	"strings"
)

// Fragments are the three blocks injected for a single taxon
type Fragments struct {
	Prior    string
	Logger   string
	Operator string
}

// FragmentSet is the concatenated output for every taxon of a run, one field
// per anchor
type FragmentSet struct {
	Priors    string
	Loggers   string
	Operators string
	Count     int
}

// GenerateFragments renders the prior, logger and operator blocks of a taxon
func GenerateFragments(taxon, treeID string, d Distribution, ps ParamSet, offset float64) Fragments {
	return Fragments{
		Prior:    priorFragment(taxon, treeID, d, ps, offset),
		Logger:   loggerFragment(taxon),
		Operator: operatorFragment(taxon, treeID),
	}
}

// GenerateFragmentSet renders and concatenates the fragments of all taxa in
// list order
func GenerateFragmentSet(taxa []string, treeID string, d Distribution, ps ParamSet, offset float64) FragmentSet {
	var priors, loggers, operators strings.Builder
	for _, taxon := range taxa {
		f := GenerateFragments(taxon, treeID, d, ps, offset)
		priors.WriteString(f.Prior)
		loggers.WriteString(f.Logger)
		operators.WriteString(f.Operator)
	}
	return FragmentSet{
		Priors:    priors.String(),
		Loggers:   loggers.String(),
		Operators: operators.String(),
		Count:     len(taxa),
	}
}

func priorFragment(taxon, treeID string, d Distribution, ps ParamSet, offset float64) string {
	var b strings.Builder
	b.WriteString("\t    <distribution id=\"tip." + taxon + ".prior\" ")
	b.WriteString("spec=\"beast.math.distributions.MRCAPrior\" ")
	b.WriteString("tipsonly=\"true\" tree=\"@" + treeID + "\">\n")
	b.WriteString("\t\t<taxonset id=\"tip." + taxon + "\" spec=\"TaxonSet\">\n")
	b.WriteString("\t\t    <taxon id=\"" + taxon + "\" spec=\"Taxon\"/>\n")
	b.WriteString("\t\t</taxonset>\n")
	b.WriteString(d.Inner(d, taxon, ps, offset))
	b.WriteString("\t    </distribution>\n")
	return b.String()
}

func parameterLines(taxon string, ps ParamSet) string {
	var b strings.Builder
	for _, p := range ps {
		b.WriteString("\t\t    <parameter id=\"RealParameter." + p.Name + "." + taxon + "\" ")
		b.WriteString("estimate=\"false\" name=\"" + p.Name + "\">")
		b.WriteString(FormatFloat(p.Value))
		b.WriteString("</parameter>\n")
	}
	return b.String()
}

func labelledInner(d Distribution, taxon string, ps ParamSet, offset float64) string {
	return "\t\t<" + d.Label + " id=\"" + d.Label + "." + taxon + "\" name=\"distr\" offset=\"" +
		FormatFloat(offset) + "\">\n" +
		parameterLines(taxon, ps) +
		"\t\t</" + d.Label + ">\n"
}

// The poisson block has its own element and always carries an offset of 1.0.
func poissonInner(d Distribution, taxon string, ps ParamSet, _ float64) string {
	return "\t\t<distr id=\"" + d.Label + "." + taxon + "\" spec=\"beast.math.distributions.Poisson\" offset=\"1.0\">\n" +
		parameterLines(taxon, ps) +
		"\t\t</distr>\n"
}

func loggerFragment(taxon string) string {
	return "\t<log idref=\"@tip." + taxon + ".prior\"/>\n"
}

func operatorFragment(taxon, treeID string) string {
	return "<operator id=\"TipDatesRandomWalker." + taxon + "\"\n" +
		"windowSize=\"1\"\n" +
		"spec=\"TipDatesRandomWalker\"\n" +
		"taxonset=\"@tip." + taxon + "\"\n" +
		"tree=\"@" + treeID + "\"\n" +
		"weight=\"1.0\"/>\n"
}

// FormatFloat writes a number the way BEAUti files written by hand usually
// show them: shortest round-trip digits with a decimal point, scientific
// notation for very small and very large magnitudes.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
