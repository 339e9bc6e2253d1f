package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaydee94/refcheck/internal/extractor"
	"github.com/Jaydee94/refcheck/internal/values"
)

func newTestScanner(t *testing.T, valuesYAML string) *Scanner {
	t.Helper()
	doc, err := values.Parse([]byte(valuesYAML))
	require.NoError(t, err)
	return New(doc, extractor.New(), zerolog.Nop())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanSingleRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "templates/deployment.yaml", `
name: {{ .Values.AppName }}
db: {{ .Values.PG.R1.DBName }}
nameAgain: {{ .Values.AppName | quote }}
`)
	writeFile(t, root, "templates/_helpers.tpl", `{{ .Values.Service.Type }}`)
	writeFile(t, root, "README.md", `{{ .Values.Ignored }}`)

	s := newTestScanner(t, `
AppName: demo
PG:
  R1:
    DBName: orders
`)
	results, err := s.Scan([]string{root})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Walk order is lexicographic: _helpers.tpl before deployment.yaml
	helpers := results[0]
	assert.Equal(t, filepath.Join("templates", "_helpers.tpl"), helpers.File)
	require.Len(t, helpers.References, 1)
	assert.Equal(t, "Service.Type", helpers.References[0].Path)
	assert.False(t, helpers.References[0].Found)

	deployment := results[1]
	assert.Equal(t, filepath.Join("templates", "deployment.yaml"), deployment.File)
	require.Len(t, deployment.References, 2)
	assert.Equal(t, "AppName", deployment.References[0].Path)
	assert.True(t, deployment.References[0].Found)
	assert.Equal(t, 2, deployment.References[0].Occurrences)
	assert.Equal(t, "PG.R1.DBName", deployment.References[1].Path)
	assert.True(t, deployment.References[1].Found)
	assert.Equal(t, 1, deployment.References[1].Occurrences)
}

func TestScanMultipleRootsKeepsOrder(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeFile(t, rootA, "a.yaml", `{{ .Values.A }}`)
	writeFile(t, rootB, "b.yaml", `{{ .Values.B }}`)

	s := newTestScanner(t, "A: 1\nB: 2")
	results, err := s.Scan([]string{rootA, rootB})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, rootA, results[0].Root)
	assert.Equal(t, rootB, results[1].Root)
}

func TestScanMissingRootIsFatal(t *testing.T) {
	s := newTestScanner(t, "A: 1")
	_, err := s.Scan([]string{"/does/not/exist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/does/not/exist")
}

func TestScanRootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "values.yaml")
	require.NoError(t, os.WriteFile(file, []byte("A: 1"), 0644))

	s := newTestScanner(t, "A: 1")
	_, err := s.Scan([]string{file})
	assert.Error(t, err)
}

func TestScanUnreadableFileIsRecoverable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}
	root := t.TempDir()
	writeFile(t, root, "good.yaml", `{{ .Values.A }}`)
	writeFile(t, root, "bad.yaml", `{{ .Values.A }}`)
	require.NoError(t, os.Chmod(filepath.Join(root, "bad.yaml"), 0000))

	s := newTestScanner(t, "A: 1")
	results, err := s.Scan([]string{root})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NotEmpty(t, results[0].Error)
	assert.Empty(t, results[0].References)
	assert.Empty(t, results[1].Error)
	require.Len(t, results[1].References, 1)
	assert.True(t, results[1].References[0].Found)
}

func TestScanFileWithoutReferences(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "static.yaml", "kind: ConfigMap\n")

	s := newTestScanner(t, "A: 1")
	results, err := s.Scan([]string{root})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].References)
	assert.Empty(t, results[0].Error)
}
