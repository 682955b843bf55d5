package main

import (
	"sort"
	"strings"
)

type slot int

const (
	slotP1 slot = iota
	slotP2
	slotOffset
)

type paramSlot struct {
	name string
	from slot
}

// Param is a single named distribution parameter
type Param struct {
	Name  string
	Value float64
}

// ParamSet holds the parameters of a distribution in declaration order
type ParamSet []Param

// Distribution is one prior kind BEAUti knows about. Inner renders the
// distribution block nested inside the MRCA prior of a taxon.
type Distribution struct {
	Name   string
	Label  string
	params []paramSlot
	Inner  func(d Distribution, taxon string, ps ParamSet, offset float64) string
}

// Params binds the positional command line values to the parameter names
// of the distribution
func (d Distribution) Params(p1, p2, po float64) ParamSet {
	ps := make(ParamSet, len(d.params))
	for i, s := range d.params {
		v := p1
		switch s.from {
		case slotP2:
			v = p2
		case slotOffset:
			v = po
		}
		ps[i] = Param{Name: s.name, Value: v}
	}
	return ps
}

func labelled(label string, params ...paramSlot) Distribution {
	return Distribution{Label: label, params: params, Inner: labelledInner}
}

// Distributions maps a prior name to its BEAST rendering
var Distributions = map[string]Distribution{
	"exponential":   labelled("Exponential", paramSlot{"mean", slotP1}),
	"log-normal":    labelled("LogNormal", paramSlot{"M", slotP1}, paramSlot{"S", slotP2}),
	"gamma":         labelled("Gamma", paramSlot{"alpha", slotP1}, paramSlot{"beta", slotP2}),
	"beta":          labelled("Beta", paramSlot{"alpha", slotP1}, paramSlot{"beta", slotP2}),
	"inverse-gamma": labelled("InverseGamma", paramSlot{"alpha", slotP1}, paramSlot{"beta", slotP2}),
	"laplace":       labelled("LaplaceDistribution", paramSlot{"mu", slotP1}, paramSlot{"scale", slotP2}),
	"uniform":       labelled("Uniform", paramSlot{"lower", slotP1}, paramSlot{"upper", slotP2}),
	"normal":        labelled("Normal", paramSlot{"mean", slotP1}, paramSlot{"sigma", slotP2}),
	"1/x":           labelled("OneOnX", paramSlot{"offset", slotOffset}),
	"poisson": {
		Label:  "Poisson",
		params: []paramSlot{{"lambda", slotP1}},
		Inner:  poissonInner,
	},
}

// distributionAliases are accepted on the command line in place of the
// canonical name
var distributionAliases = map[string]string{
	"reciprocal": "1/x",
}

func init() {
	for name, d := range Distributions {
		d.Name = name
		Distributions[name] = d
	}
}

// LookupDistribution resolves a case-insensitive prior name or alias
func LookupDistribution(name string) (Distribution, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := distributionAliases[name]; ok {
		name = canonical
	}
	d, ok := Distributions[name]
	return d, ok
}

// DistributionNames lists the accepted prior names
func DistributionNames() []string {
	names := make([]string, 0, len(Distributions))
	for name := range Distributions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
