package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleValues = `
AppName: my-app
Replicas: 3
PG:
  R1:
    DBName: orders
    Host: null
  Hosts:
    - a
    - b
common: &common
  LogLevel: info
Aliased: *common
`

func TestResolveNestedPaths(t *testing.T) {
	doc, err := Parse([]byte(sampleValues))
	require.NoError(t, err)

	cases := []struct {
		path string
		want bool
	}{
		{"AppName", true},
		{"Replicas", true},
		{"PG", true},
		{"PG.R1", true},
		{"PG.R1.DBName", true},
		{"PG.R1.Host", true}, // null value still exists
		{"PG.R1.Missing", false},
		{"PG.R2.DBName", false},
		{"Missing", false},
		{"AppName.Nested", false},  // descending into a scalar
		{"PG.Hosts.0", false},      // sequences are not traversed
		{"Aliased.LogLevel", true}, // anchors/aliases resolve
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, doc.Resolve(tc.path), "path %q", tc.path)
	}
}

func TestResolveEmptyPathFails(t *testing.T) {
	doc, err := Parse([]byte("AppName: x"))
	require.NoError(t, err)

	assert.False(t, doc.ResolveSegments(nil))
	assert.False(t, doc.ResolveSegments([]string{}))
	assert.False(t, doc.ResolveSegments([]string{""}))
}

func TestResolveEmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	assert.False(t, doc.Resolve("AppName"))
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("a: [unclosed"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}
