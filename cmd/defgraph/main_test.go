package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sonomirco/defgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWorkspace = `{
  "Name": "Sample",
  "Nodes": [
    {
      "ConcreteType": "PythonNodeModels.PythonNode, PythonNodeModels",
      "Id": "aaaaaaa1-0000-0000-0000-000000000001",
      "Code": "import clr\nclr.AddReference('RevitAPI')",
      "Inputs": [{"Id": "p-in", "Name": "IN[0]", "TypeName": "var"}],
      "Outputs": [{"Id": "p-out", "Name": "OUT", "TypeName": "var"}]
    },
    {
      "ConcreteType": "CoreNodeModels.Watch, CoreNodeModels",
      "Id": "aaaaaaa2-0000-0000-0000-000000000002",
      "Inputs": [{"Id": "p-w-in", "Name": "", "TypeName": "var"}],
      "Outputs": []
    }
  ],
  "Connectors": [
    {"Start": "p-out", "End": "p-w-in"}
  ]
}`

func writeWorkspace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.dyn")
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkspace), 0644))
	return path
}

func TestRun_WritesReportBesideInput(t *testing.T) {
	t.Parallel()

	path := writeWorkspace(t)
	var outW, logW testutil.SafeBuffer

	err := run(&outW, &logW, []string{"-log-level", "error", path})

	require.NoError(t, err)
	artifact := filepath.Join(filepath.Dir(path), "flow-defgraph-report.md")
	assert.Contains(t, outW.String(), "Saved: "+artifact)

	doc, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "# Definition Analysis")
	assert.Contains(t, string(doc), "**File:** flow.dyn")
	assert.Contains(t, string(doc), "- Script Components: 1")
	assert.Contains(t, string(doc), "clr.AddReference('RevitAPI')")
	assert.Contains(t, string(doc), "- RevitAPI")
}

func TestRun_StdoutMode(t *testing.T) {
	t.Parallel()

	path := writeWorkspace(t)
	var outW, logW testutil.SafeBuffer

	err := run(&outW, &logW, []string{"-stdout", "-log-level", "error", path})

	require.NoError(t, err)
	assert.Contains(t, outW.String(), "# Definition Analysis")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(path), "flow-defgraph-report.md"))
}

func TestRun_DirectoryInput(t *testing.T) {
	t.Parallel()

	path := writeWorkspace(t)
	var outW, logW testutil.SafeBuffer

	err := run(&outW, &logW, []string{"-log-level", "error", filepath.Dir(path)})

	require.NoError(t, err)
	assert.Contains(t, outW.String(), "Saved: ")
}

func TestRun_MalformedInputFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.dyn")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	var outW, logW testutil.SafeBuffer

	err := run(&outW, &logW, []string{"-log-level", "error", path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestRun_NoDefinitionsFound(t *testing.T) {
	t.Parallel()

	var outW, logW testutil.SafeBuffer

	err := run(&outW, &logW, []string{"-log-level", "error", t.TempDir()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no definition files found")
}

func TestRun_HelpExitsCleanly(t *testing.T) {
	t.Parallel()

	var outW, logW testutil.SafeBuffer

	err := run(&outW, &logW, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, outW.String(), "Usage:")
}
