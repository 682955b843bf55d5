package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v2"
)

// Flag names, shared by the command line and the YAML config file
const (
	flagOutput     = "output"
	flagSequences  = "sequences"
	flagFilterTree = "filterTree"
	flagPriorDist  = "priorDist"
	flagParameter1 = "parameter1"
	flagParameter2 = "parameter2"
	flagParametero = "parametero"
	flagRealSpace  = "realspace"
	flagTime       = "time"
	flagEstimate   = "estimate"
	flagRecord     = "record"
	flagNotify     = "notify"
	flagConfig     = "config"
	flagVerbose    = "verbose"
)

// FileConfig is the YAML form of the options. Unset keys keep their flag
// defaults.
type FileConfig struct {
	Output     *string  `yaml:"output"`
	Sequences  *string  `yaml:"sequences"`
	FilterTree *string  `yaml:"filterTree"`
	PriorDist  *string  `yaml:"priorDist"`
	Parameter1 *float64 `yaml:"parameter1"`
	Parameter2 *float64 `yaml:"parameter2"`
	Parametero *float64 `yaml:"parametero"`
	RealSpace  *bool    `yaml:"realspace"`
	Time       *string  `yaml:"time"`
	Estimate   *bool    `yaml:"estimate"`
	Record     *string  `yaml:"record"`
	Notify     *string  `yaml:"notify"`
}

// Options holds the raw values bound to the command line flags
type Options struct {
	Output     string
	Sequences  string
	FilterTree string
	PriorDist  string
	Parameter1 float64
	Parameter2 float64
	Parametero float64
	RealSpace  bool
	Time       string
	Estimate   bool
	Record     string
	Notify     string
	Config     string
	Verbose    bool
}

// RunConfig is the validated configuration of a single run
type RunConfig struct {
	Input        Location
	Output       Location
	Sequences    *Location
	FilterTree   *Location
	Record       *Location
	Notify       string
	Distribution Distribution
	Offset       float64
	Params       ParamSet
	RealSpace    bool
	Estimate     bool
	Time         string
}

// BindFlags registers the options on a flag set
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, flagOutput, "o", DefaultOutput, "Specifies the name or path of the updated BEAUti .xml file.")
	fs.StringVarP(&o.Sequences, flagSequences, "s", "", "A file that specifies the sequences to which date priors should be assigned. "+
		"Each line should contain exactly one sequence id (default = all dated sequences found in the BEAUti .xml file).")
	fs.StringVar(&o.FilterTree, flagFilterTree, "", "A newick tree whose tip names are the sequences to which date priors should be assigned.")
	fs.StringVarP(&o.PriorDist, flagPriorDist, "d", DefaultPriorDist, "The prior distribution to be used. Possibilities are: "+
		strings.Join(DistributionNames(), ", ")+".")
	fs.Float64Var(&o.Parameter1, flagParameter1, DefaultParameter1, "The first parameter (mean, alpha, lambda, mu, lower or M) of the prior distribution (-p1).")
	fs.Float64Var(&o.Parameter2, flagParameter2, DefaultParameter2, "The second parameter (sigma, S, beta, scale or upper) of the prior distribution (-p2).")
	fs.Float64Var(&o.Parametero, flagParametero, DefaultParametero, "The offset parameter of the prior distribution (-po).")
	fs.BoolVarP(&o.RealSpace, flagRealSpace, "r", false, "Treat the mean of the log normal distribution as being in real space rather than log-transformed space.")
	fs.StringVarP(&o.Time, flagTime, "t", DefaultTime, "Whether dates are interpreted as time before the 'present' or time since the 'past'.")
	fs.BoolVarP(&o.Estimate, flagEstimate, "e", false, "Estimate the parameters of the chosen distribution (accepted, not yet supported).")
	fs.StringVar(&o.Record, flagRecord, "", "Write a YAML record of the run to this location.")
	fs.StringVar(&o.Notify, flagNotify, "", "Email address to notify once the updated file is written.")
	fs.StringVarP(&o.Config, flagConfig, "c", "", "YAML file with default values for the options above.")
	fs.BoolVarP(&o.Verbose, flagVerbose, "v", false, "Log progress to stderr.")
}

// ApplyFile copies the values of a config file into options that were not
// set explicitly on the command line
func (o *Options) ApplyFile(fc FileConfig, changed func(name string) bool) {
	setString := func(name string, dst *string, src *string) {
		if src != nil && !changed(name) {
			*dst = *src
		}
	}
	setFloat := func(name string, dst *float64, src *float64) {
		if src != nil && !changed(name) {
			*dst = *src
		}
	}
	setBool := func(name string, dst *bool, src *bool) {
		if src != nil && !changed(name) {
			*dst = *src
		}
	}

	setString(flagOutput, &o.Output, fc.Output)
	setString(flagSequences, &o.Sequences, fc.Sequences)
	setString(flagFilterTree, &o.FilterTree, fc.FilterTree)
	setString(flagPriorDist, &o.PriorDist, fc.PriorDist)
	setFloat(flagParameter1, &o.Parameter1, fc.Parameter1)
	setFloat(flagParameter2, &o.Parameter2, fc.Parameter2)
	setFloat(flagParametero, &o.Parametero, fc.Parametero)
	setBool(flagRealSpace, &o.RealSpace, fc.RealSpace)
	setString(flagTime, &o.Time, fc.Time)
	setBool(flagEstimate, &o.Estimate, fc.Estimate)
	setString(flagRecord, &o.Record, fc.Record)
	setString(flagNotify, &o.Notify, fc.Notify)
}

// LoadFileConfig reads a YAML config file
func LoadFileConfig(ctx context.Context, stores *Stores, raw string) (FileConfig, error) {
	var fc FileConfig
	data, err := stores.Read(ctx, ParseLocation(raw))
	if err != nil {
		return fc, NewError(CodeConfig, raw, "Unable to read config file.", err)
	}
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return fc, NewError(CodeConfig, raw, "Unable to parse config file.", err)
	}
	return fc, nil
}

// Resolve validates the options against the positional input argument
func (o Options) Resolve(input string) (RunConfig, error) {
	in := ParseLocation(input)
	if in.Ext() != ".xml" {
		return RunConfig{}, NewError(CodeFileType, input, "Invalid file type: not a .xml file.", nil)
	}

	d, ok := LookupDistribution(o.PriorDist)
	if !ok {
		return RunConfig{}, NewError(CodeConfig, input, fmt.Sprintf("Invalid prior distribution %q. Possibilities are: %s.",
			o.PriorDist, strings.Join(DistributionNames(), ", ")), nil)
	}

	direction := strings.ToLower(strings.TrimSpace(o.Time))
	if _, ok := DateSectionPatterns[direction]; !ok {
		return RunConfig{}, NewError(CodeConfig, input, fmt.Sprintf("Invalid time direction %q. Possibilities are: %s, %s.",
			o.Time, TimePresent, TimePast), nil)
	}

	if o.Sequences != "" && o.FilterTree != "" {
		return RunConfig{}, NewError(CodeConfig, input, "Provide either a sequence file or a filter tree, not both.", nil)
	}

	rc := RunConfig{
		Input:        in,
		Output:       ParseLocation(o.Output),
		Notify:       strings.TrimSpace(o.Notify),
		Distribution: d,
		Offset:       o.Parametero,
		Params:       d.Params(o.Parameter1, o.Parameter2, o.Parametero),
		RealSpace:    o.RealSpace,
		Estimate:     o.Estimate,
		Time:         direction,
	}
	rc.Sequences = optionalLocation(o.Sequences)
	rc.FilterTree = optionalLocation(o.FilterTree)
	rc.Record = optionalLocation(o.Record)

	return rc, nil
}

func optionalLocation(raw string) *Location {
	if raw == "" {
		return nil
	}
	loc := ParseLocation(raw)
	return &loc
}

// ResolveCommand builds the run configuration from a parsed command,
// layering the config file between the defaults and explicit flags
func ResolveCommand(ctx context.Context, cmd *cobra.Command, o *Options, stores *Stores, input string) (RunConfig, error) {
	if o.Config != "" {
		fc, err := LoadFileConfig(ctx, stores, o.Config)
		if err != nil {
			return RunConfig{}, err
		}
		o.ApplyFile(fc, cmd.Flags().Changed)
	}
	return o.Resolve(input)
}
