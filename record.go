package main

import (
	"context"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"
)

// RunRecord represents a single completed run
type RunRecord struct {
	RunID        string        `yaml:"run_id"`
	Input        string        `yaml:"input"`
	Output       string        `yaml:"output"`
	Filter       string        `yaml:"filter,omitempty"`
	Distribution string        `yaml:"distribution"`
	Parameters   yaml.MapSlice `yaml:"parameters,flow"`
	Offset       float64       `yaml:"offset"`
	Time         string        `yaml:"time"`
	RealSpace    bool          `yaml:"realspace"`
	Estimate     bool          `yaml:"estimate"`
	TreeID       string        `yaml:"tree_id"`
	Taxa         []string      `yaml:"taxa,flow"`
	Anchors      RewriteStats  `yaml:"anchors"`
	Status       string        `yaml:"status"`
	CreatedAt    string        `yaml:"created_at"`
	CompletedAt  string        `yaml:"completed_at"`
}

// NewRunRecord starts a record for the given configuration
func NewRunRecord(rc RunConfig) (*RunRecord, error) {
	ruuid, err := uuid.NewV4()
	if err != nil {
		log.Error("Error generating run id: ", err)
		return nil, err
	}

	params := make(yaml.MapSlice, len(rc.Params))
	for i, p := range rc.Params {
		params[i] = yaml.MapItem{Key: p.Name, Value: p.Value}
	}

	rr := &RunRecord{
		RunID:        fmt.Sprintf(RunIDFormat, ruuid),
		Input:        rc.Input.Raw,
		Output:       rc.Output.Raw,
		Distribution: rc.Distribution.Name,
		Parameters:   params,
		Offset:       rc.Offset,
		Time:         rc.Time,
		RealSpace:    rc.RealSpace,
		Estimate:     rc.Estimate,
		Status:       "CREATED",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	switch {
	case rc.Sequences != nil:
		rr.Filter = rc.Sequences.Raw
	case rc.FilterTree != nil:
		rr.Filter = rc.FilterTree.Raw
	}
	return rr, nil
}

// Complete marks the record as done
func (rr *RunRecord) Complete(treeID string, taxa []string, stats RewriteStats) {
	rr.TreeID = treeID
	rr.Taxa = taxa
	rr.Anchors = stats
	rr.Status = "COMPLETED"
	rr.CompletedAt = time.Now().UTC().Format(time.RFC3339)
}

func writeRunRecord(ctx context.Context, stores *Stores, loc Location, rr *RunRecord) error {
	rrs, err := yaml.Marshal(rr)
	if err != nil {
		return err
	}
	return stores.Write(ctx, loc, rrs, "text/plain")
}
