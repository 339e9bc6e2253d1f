package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSimpleReferences(t *testing.T) {
	e := New()
	text := `
apiVersion: v1
metadata:
  name: {{ .Values.AppName }}
data:
  db: {{ .Values.PG.R1.DBName }}
  again: {{ .Values.AppName }}
`
	assert.Equal(t, []string{"AppName", "PG.R1.DBName", "AppName"}, e.Extract(text))
}

func TestExtractIgnoresFilters(t *testing.T) {
	e := New()
	assert.Equal(t, []string{"AppName"}, e.Extract(`{{ .Values.AppName | quote }}`))
	assert.Equal(t, []string{"Image.Tag"}, e.Extract(`{{ .Values.Image.Tag | default "latest" | quote }}`))
}

func TestExtractIgnoresNonValueExpressions(t *testing.T) {
	e := New()
	text := `
{{ if .Values.Enabled }}
{{ range .Values.Hosts }}
{{ include "chart.labels" . }}
{{ .Release.Name }}
{{ end }}
`
	// Control-flow expressions do not start with the recognized prefix, so
	// the whole expression is skipped, including the .Values portion inside.
	assert.Empty(t, e.Extract(text))
}

func TestExtractTrimMarkers(t *testing.T) {
	e := New()
	assert.Equal(t, []string{"AppName"}, e.Extract(`{{- .Values.AppName -}}`))
}

func TestExtractMalformedReferences(t *testing.T) {
	e := New()
	assert.Empty(t, e.Extract(`{{ .Values }}`))
	assert.Empty(t, e.Extract(`{{ .Values. }}`))
	assert.Empty(t, e.Extract(`{{ .Values..X }}`))
	assert.Empty(t, e.Extract(`{{ .Values.A B }}`))
	assert.Empty(t, e.Extract(`{{ }}`))
	assert.Empty(t, e.Extract(`no expressions here`))
}

func TestExtractCustomPrefixes(t *testing.T) {
	e := New(".Values", ".Config")
	text := `{{ .Config.Port }} {{ .Values.AppName }} {{ .Other.X }}`
	assert.Equal(t, []string{"Port", "AppName"}, e.Extract(text))
}

func TestExtractIsPure(t *testing.T) {
	e := New()
	text := `{{ .Values.A }} {{ .Values.B | quote }} {{ if .Values.C }}`
	assert.Equal(t, e.Extract(text), e.Extract(text))
}
