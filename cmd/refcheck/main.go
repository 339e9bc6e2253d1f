package main

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Jaydee94/refcheck/internal/bom"
	"github.com/Jaydee94/refcheck/internal/extractor"
	"github.com/Jaydee94/refcheck/internal/models"
	"github.com/Jaydee94/refcheck/internal/renderer"
	"github.com/Jaydee94/refcheck/internal/report"
	"github.com/Jaydee94/refcheck/internal/scanner"
	"github.com/Jaydee94/refcheck/internal/values"
	"github.com/Jaydee94/refcheck/pkg/utils"
)

var version = "dev"

func main() {
	// configFile stores the path to the configuration file
	var configFile string
	// valuesFile stores the values document references are checked against
	var valuesFile string
	// bomFile stores the path to a bill-of-materials manifest
	var bomFile string
	// format stores the desired output format
	var format string
	// environment stores the environment name
	var environment string
	// prefixes stores the recognized reference prefixes
	var prefixes []string
	// verbose enables debug logging
	var verbose bool
	// listEnvironments flag to list all configured environments
	var listEnvironments bool

	// Root command
	rootCmd := &cobra.Command{
		Use:   "refcheck",
		Short: "RefCheck validates Helm chart variable references against a values file",
		Run: func(cmd *cobra.Command, args []string) {
			if listEnvironments {
				if err := listConfiguredEnvironments(configFile); err != nil {
					fmt.Fprintf(os.Stderr, "Error listing environments: %v\n", err)
					os.Exit(1)
				}
				os.Exit(0)
			}
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&listEnvironments, "list-environments", "l", false, "List all configured environments if a refcheck.yaml is found or explicitly passed")

	// Check subcommand
	checkCmd := &cobra.Command{
		Use:   "check [chart-root]...",
		Short: "Check chart variable references against the values file",
		Run: func(cmd *cobra.Command, args []string) {
			// Automatically load the config file from the git repo if possible
			if configFile == "" {
				var err error
				configFile, err = loadConfigFileFromGitRepo()
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error checking Git repo: %v\n", err)
					os.Exit(1)
				}
			}
			// Load the configuration from the configuration file and/or CLI arguments
			config, err := loadConfig(configFile, valuesFile, bomFile, format, environment, prefixes)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				os.Exit(1)
			}
			if config.BomFile != "" && len(args) > 0 {
				fmt.Fprintln(os.Stderr, "Error: chart-root arguments and --bom are mutually exclusive")
				os.Exit(1)
			}
			if config.ValuesFile == "" {
				fmt.Fprintln(os.Stderr, "Error: no values file given (use --values or refcheck.yaml)")
				os.Exit(1)
			}

			logger := utils.CreateLogger(verbose)

			// Resolve the chart roots to scan, either from the BOM manifest
			// or from the direct arguments/config
			var roots []string
			if config.BomFile != "" {
				roots, err = bom.Expand(config.BomFile, logger)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error expanding BOM manifest: %v\n", err)
					os.Exit(1)
				}
			} else if len(args) > 0 {
				roots = args
			} else if config.ChartPath != "" {
				roots = []string{config.ChartPath}
			} else {
				fmt.Fprintln(os.Stderr, "Error: no chart root given (pass a directory, --bom, or refcheck.yaml)")
				os.Exit(1)
			}

			// Load the values document before any scanning begins
			doc, err := values.Load(config.ValuesFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading values file: %v\n", err)
				os.Exit(1)
			}

			startTime := time.Now()
			run, err := runCheck(doc, config, roots, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error scanning charts: %v\n", err)
				os.Exit(1)
			}
			run.ValuesFile = config.ValuesFile
			run.Roots = roots
			duration := time.Since(startTime)

			var output []byte
			// Output the results in the desired format
			switch config.Format {
			case "pretty":
				renderer.PrintReportPretty(run, duration)
			case "json":
				output, err = json.MarshalIndent(run, "", "  ")
			case "yaml":
				output, err = yaml.Marshal(run)
			case "junit":
				err = printJUnitTestReport(run)
			default:
				fmt.Fprintf(os.Stderr, "Unknown output format: %s\n", config.Format)
				os.Exit(1)
			}

			if err != nil {
				fmt.Fprintf(os.Stderr, "Error processing results: %v\n", err)
				os.Exit(1)
			}

			if output != nil {
				fmt.Println(string(output))
			}

			// Exit with a non-zero status if any reference is missing or
			// nothing was scanned
			if !run.Success {
				os.Exit(1)
			}
		},
	}

	checkCmd.Flags().StringVarP(&valuesFile, "values", "f", "", "Values YAML file to check references against")
	checkCmd.Flags().StringVarP(&bomFile, "bom", "b", "", "BOM manifest listing chart roots to check")
	checkCmd.Flags().StringVarP(&format, "output-format", "o", "pretty", "Output format (pretty, json, yaml, junit)")
	checkCmd.Flags().StringVarP(&environment, "environment", "e", "", "(Optional) Specify the environment to use (e.g., test, staging, production). This will load the preconfigured values file for the specified environment in refcheck.yaml.")
	checkCmd.Flags().StringSliceVar(&prefixes, "prefix", nil, "Recognized reference prefix (repeatable, default .Values)")
	checkCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Version subcommand
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of RefCheck",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("RefCheck version %s\n", version)
		},
	}

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runCheck scans the given chart roots with a progress spinner and
// aggregates the per-file results into the final report.
func runCheck(doc *values.Document, config *models.Config, roots []string, logger zerolog.Logger) (models.RunReport, error) {
	ext := extractor.New(config.Prefixes...)
	s := scanner.New(doc, ext, logger)

	// Only show the spinner for interactive pretty output; machine formats
	// must stay clean
	if config.Format == "pretty" {
		sp := spinner.New(spinner.CharSets[4], 100*time.Millisecond)
		sp.Suffix = fmt.Sprintf(" Scanning: %s", strings.Join(roots, ", "))
		sp.Start()
		defer sp.Stop()
	}

	results, err := s.Scan(roots)
	if err != nil {
		return models.RunReport{}, err
	}
	return report.Aggregate(results), nil
}

// checkIfInGitRepo checks if the current working directory is inside a Git repository
func checkIfInGitRepo() (bool, string, error) {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	output, err := cmd.Output()
	if err != nil {
		return false, "", err
	}
	if strings.TrimSpace(string(output)) == "true" {
		cmd = exec.Command("git", "rev-parse", "--show-toplevel")
		rootDirOutput, err := cmd.Output()
		if err != nil {
			return false, "", err
		}
		return true, strings.TrimSpace(string(rootDirOutput)), nil
	}
	return false, "", nil
}

// loadConfigFileFromGitRepo checks if we are in a Git repository and if
// the refcheck.yaml file exists in the root of the Git repo
func loadConfigFileFromGitRepo() (string, error) {
	isInRepo, rootDir, err := checkIfInGitRepo()
	if err != nil {
		// Not being inside a git repo is not an error for refcheck
		return "", nil
	}
	if isInRepo {
		configFilePath := filepath.Join(rootDir, "refcheck.yaml")
		if _, err := os.Stat(configFilePath); err == nil {
			fmt.Printf("Using config file from project root: %s\n", configFilePath)
			return configFilePath, nil
		}
	}
	return "", nil
}

func listConfiguredEnvironments(configFile string) error {
	if configFile == "" {
		var err error
		configFile, err = loadConfigFileFromGitRepo()
		if err != nil {
			return err
		}
	}

	config := &models.Config{}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return err
		}
	}

	if len(config.Environments) == 0 {
		fmt.Println("No environments configured.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Environment", "Values File"})
	table.SetRowLine(true)
	table.SetAutoWrapText(false)

	for env, envConfig := range config.Environments {
		table.Append([]string{env, envConfig.ValuesFile})
	}

	table.Render()
	return nil
}

// printJUnitTestReport generates a JUnit-compatible unit test report
// from the given run report.
//
// The report contains one test case per scanned file, with a failure
// listing the file's missing references, if any.
func printJUnitTestReport(run models.RunReport) error {
	var testCases []models.TestCase
	failures := 0

	for _, result := range run.Results {
		file := filepath.Join(result.Root, result.File)
		testCase := models.TestCase{
			Name:      file,
			ClassName: "RefCheck",
			Time:      "0",
		}

		var missing []string
		for _, ref := range result.References {
			if !ref.Found {
				missing = append(missing, ref.Path)
			}
		}

		switch {
		case result.Error != "":
			testCase.Failure = &models.Failure{
				Message: "Template file could not be read",
				Type:    "ReadError",
				Content: result.Error,
			}
			failures++
		case len(missing) > 0:
			testCase.Failure = &models.Failure{
				Message: "Missing references in values file",
				Type:    "MissingReference",
				Content: fmt.Sprintf("Missing: %v", missing),
			}
			failures++
		default:
			testCase.SystemOut = &models.SystemOut{
				Content: fmt.Sprintf("All %d references of %v resolved", len(result.References), file),
			}
		}

		testCases = append(testCases, testCase)
	}

	suite := models.TestSuite{
		Name:      "Helm Reference Check",
		Tests:     len(run.Results),
		Failures:  failures,
		TestCases: testCases,
	}

	output, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(output))
	return nil
}

// loadConfig dynamically loads the configuration from a file and/or CLI arguments
func loadConfig(configFile, valuesFile, bomFile, format, environment string, prefixes []string) (*models.Config, error) {
	config := &models.Config{}
	if configFile != "" {
		configDir := filepath.Dir(configFile)
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
		// Resolve paths in the file relative to the file itself, so the
		// config works regardless of the current working directory
		for _, field := range []*string{&config.ChartPath, &config.ValuesFile, &config.BomFile} {
			if *field == "" {
				continue
			}
			*field, err = resolveRelativePath(configDir, *field)
			if err != nil {
				return nil, fmt.Errorf("error resolving config path %s: %w", *field, err)
			}
		}
		for env, envConfig := range config.Environments {
			if envConfig.ValuesFile == "" {
				continue
			}
			envConfig.ValuesFile, err = resolveRelativePath(configDir, envConfig.ValuesFile)
			if err != nil {
				return nil, fmt.Errorf("error resolving values file for environment %s: %w", env, err)
			}
			config.Environments[env] = envConfig
		}
	}

	// Override the values file if an environment is specified
	if environment != "" {
		envConfig, exists := config.Environments[environment]
		if !exists {
			return nil, fmt.Errorf("environment %s not found in refcheck.yaml", environment)
		}
		config.ValuesFile = envConfig.ValuesFile
	}

	// Override config file settings from CLI arguments
	if valuesFile != "" {
		config.ValuesFile = valuesFile
	}
	if bomFile != "" {
		config.BomFile = bomFile
	}
	if format != "" {
		config.Format = format
	}
	if len(prefixes) > 0 {
		config.Prefixes = prefixes
	}
	if config.Format == "" {
		config.Format = "pretty"
	}
	if len(config.Prefixes) == 0 {
		config.Prefixes = extractor.DefaultPrefixes
	}
	return config, nil
}

// resolveRelativePath resolves a relative path based on the given base directory
func resolveRelativePath(baseDir, relativePath string) (string, error) {
	if filepath.IsAbs(relativePath) {
		return relativePath, nil
	}
	return filepath.Abs(filepath.Join(baseDir, relativePath))
}
