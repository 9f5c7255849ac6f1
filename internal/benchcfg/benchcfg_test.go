package benchcfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cssmin/internal/benchcfg"
)

func writeSuite(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	s, err := benchcfg.Load(writeSuite(t, "iterations = 50\ninputs = [\"a.css\", \"b.css\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, 50, s.Iterations)
	assert.Equal(t, []string{"a.css", "b.css"}, s.Inputs)
}

func TestLoad_DefaultIterations(t *testing.T) {
	s, err := benchcfg.Load(writeSuite(t, "inputs = [\"a.css\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, 100, s.Iterations)
}

func TestLoad_MissingInputs(t *testing.T) {
	_, err := benchcfg.Load(writeSuite(t, "iterations = 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing inputs")
}

func TestLoad_BadTOML(t *testing.T) {
	_, err := benchcfg.Load(writeSuite(t, "inputs = [\n"))
	require.Error(t, err)
}
