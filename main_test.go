package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeArgs(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"in.xml"}, []string{"in.xml"}},
		{[]string{"-p1", "3", "-p2", "4", "-po", "1"}, []string{"--parameter1", "3", "--parameter2", "4", "--parametero", "1"}},
		{[]string{"-p1=3", "-po=-1"}, []string{"--parameter1=3", "--parametero=-1"}},
		{[]string{"-d", "gamma", "--", "-p1"}, []string{"-d", "gamma", "--", "-p1"}},
		{[]string{"-p10"}, []string{"-p10"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, normalizeArgs(c.in))
	}
}

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "beauti.xml")
	output := filepath.Join(dir, "out.xml")
	require.NoError(t, os.WriteFile(input, []byte(testBeautiXML), 0644))

	var stdout bytes.Buffer
	cmd := newRootCmd(&stdout)
	cmd.SetArgs(normalizeArgs([]string{input, "-o", output, "-d", "Gamma", "-p1", "2", "-p2", "3", "-po", "0.5"}))
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "<Gamma id=\"Gamma.A\" name=\"distr\" offset=\"0.5\">")
	assert.Contains(t, out, "<parameter id=\"RealParameter.alpha.A\" estimate=\"false\" name=\"alpha\">2.0</parameter>")
	assert.Contains(t, out, "<parameter id=\"RealParameter.beta.B\" estimate=\"false\" name=\"beta\">3.0</parameter>")
	assert.Contains(t, stdout.String(), "PPoTD - Putting Priors on Tip Dates")
}

func TestRootCommandErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "beauti.xml")
	require.NoError(t, os.WriteFile(input, []byte(testBeautiXML), 0644))

	t.Run("bad extension", func(t *testing.T) {
		cmd := newRootCmd(&bytes.Buffer{})
		cmd.SetArgs([]string{filepath.Join(dir, "beauti.txt")})
		requireCode(t, cmd.Execute(), CodeFileType)
	})

	t.Run("no input", func(t *testing.T) {
		cmd := newRootCmd(&bytes.Buffer{})
		cmd.SetArgs([]string{})
		assert.Error(t, cmd.Execute())
	})

	t.Run("both filters", func(t *testing.T) {
		cmd := newRootCmd(&bytes.Buffer{})
		cmd.SetArgs([]string{input, "-s", "a.txt", "--filterTree", "b.nwk"})
		assert.Error(t, cmd.Execute())
	})

	t.Run("bad distribution", func(t *testing.T) {
		cmd := newRootCmd(&bytes.Buffer{})
		cmd.SetArgs([]string{input, "-o", filepath.Join(dir, "x.xml"), "-d", "weibull"})
		requireCode(t, cmd.Execute(), CodeConfig)
	})
}

func TestRootCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "beauti.xml")
	output := filepath.Join(dir, "out.xml")
	cfg := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(input, []byte(testBeautiXML), 0644))
	require.NoError(t, os.WriteFile(cfg, []byte("priorDist: uniform\nparameter1: 0\nparameter2: 10\noutput: "+output+"\n"), 0644))

	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs(normalizeArgs([]string{"-c", cfg, "-p2", "20", input}))
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name=\"lower\">0.0</parameter>")
	assert.Contains(t, string(data), "name=\"upper\">20.0</parameter>")
}

func TestRootCommandFilterTree(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "beauti.xml")
	output := filepath.Join(dir, "out.xml")
	tree := filepath.Join(dir, "keep.nwk")
	require.NoError(t, os.WriteFile(input, []byte(testBeautiXML), 0644))
	require.NoError(t, os.WriteFile(tree, []byte("(B:1,Z:2);\n"), 0644))

	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs(normalizeArgs([]string{input, "-o", output, "--filterTree", tree}))
	requireCode(t, cmd.Execute(), CodeFilterMismatch)

	require.NoError(t, os.WriteFile(tree, []byte("(B:1);\n"), 0644))
	cmd = newRootCmd(&bytes.Buffer{})
	cmd.SetArgs(normalizeArgs([]string{input, "-o", output, "--filterTree", tree}))
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tip.B.prior")
	assert.NotContains(t, string(data), "tip.A.prior")
}
