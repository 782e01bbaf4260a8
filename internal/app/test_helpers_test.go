package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/fieldreg/internal/hcl"
	"github.com/vk/fieldreg/internal/testutil"
	"github.com/vk/fieldreg/internal/yamlconfig"
)

const catalogHCL = `
registry "sales" {
  description = "Monthly sales extract"

  field "dummy_field" {
    input_name    = "dummy_column_1"
    exported_name = "Dummy Column"
    type          = int32
    description   = "Units sold"
  }
  field "dummy_field_2" {
    input_name    = "dummy_column_2"
    exported_name = "Dummy Column 2"
    description   = "Free text"
  }
}
`

const catalogYAML = `
registries:
  - name: hr
    description: Staff directory
    fields:
      - name: employee
        input_name: EmpName
        exported_name: Employee Name
        type: string
`

// setupAppTest builds an App over a temporary catalog and returns it with
// its output and log buffers.
func setupAppTest(t *testing.T, mutate func(*Config), stdin string) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	root := testutil.WriteFiles(t, map[string]string{
		"catalog/sales.hcl": catalogHCL,
		"catalog/hr.yaml":   catalogYAML,
	})
	cfg := Config{
		CatalogPaths: []string{filepath.Join(root, "catalog")},
		LogLevel:     "debug",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	a, err := NewApp(strings.NewReader(stdin), out, logs, validated, hcl.NewLoader(), yamlconfig.NewLoader())
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("FIELDREG_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out, logs
}
