package main

import (
	"bufio"
	"io"
	"strings"
)

// RewriteStats counts the anchor lines that received content
type RewriteStats struct {
	Lines   int `yaml:"lines"`
	Priors  int `yaml:"prior_anchors"`
	Loggers int `yaml:"logger_anchors"`
	Runs    int `yaml:"run_anchors"`
}

// Anchors returns the number of anchor lines found
func (rs RewriteStats) Anchors() int {
	return rs.Priors + rs.Loggers + rs.Runs
}

// Rewrite copies text to w line by line and splices the fragments in at the
// anchor lines. Every line, including a trailing empty one, is written
// followed by a newline. A file without anchors is copied through.
func Rewrite(w io.Writer, text string, fs FragmentSet) (RewriteStats, error) {
	var stats RewriteStats
	bw := bufio.NewWriter(w)

	for _, line := range strings.Split(text, "\n") {
		stats.Lines++
		switch {
		case strings.Contains(line, PriorAnchor):
			line = line + "\n" + fs.Priors
			stats.Priors++
		case strings.Contains(line, LoggerAnchor):
			line = line + "\n" + fs.Loggers
			stats.Loggers++
		case strings.Contains(line, RunCloseAnchor):
			line = fs.Operators + line
			stats.Runs++
		}

		if _, err := bw.WriteString(line + "\n"); err != nil {
			return stats, err
		}
	}

	return stats, bw.Flush()
}
