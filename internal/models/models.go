package models

import "encoding/xml"

// EnvironmentConfig holds the values file preconfigured for one environment
// in refcheck.yaml.
type EnvironmentConfig struct {
	ValuesFile string `yaml:"valuesFile"`
}

// Config is the merged configuration from refcheck.yaml and CLI arguments.
type Config struct {
	ChartPath    string                       `yaml:"chartPath"`
	ValuesFile   string                       `yaml:"valuesFile"`
	BomFile      string                       `yaml:"bomFile"`
	Format       string                       `yaml:"format"`
	Prefixes     []string                     `yaml:"prefixes"`
	Environments map[string]EnvironmentConfig `yaml:"environments"`
}

// TestSuite represents a JUnit-style test suite for test reports
type TestSuite struct {
	XMLName    xml.Name   `xml:"testsuite"`
	Name       string     `xml:"name,attr"`
	Tests      int        `xml:"tests,attr"`
	Failures   int        `xml:"failures,attr"`
	Time       string     `xml:"time,attr"`
	TestCases  []TestCase `xml:"testcase"`
	Properties []Property `xml:"properties>property,omitempty"`
}

// TestCase represents a single test case in a JUnit-style test report
type TestCase struct {
	Name      string     `xml:"name,attr"`
	ClassName string     `xml:"classname,attr"`
	Time      string     `xml:"time,attr"`
	Failure   *Failure   `xml:"failure,omitempty"`
	SystemOut *SystemOut `xml:"system-out,omitempty"`
}

// Failure represents a failure in a test case
type Failure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// SystemOut captures stdout for a test case
type SystemOut struct {
	Content string `xml:",chardata"`
}

// Property represents a property in the JUnit test suite
type Property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}
