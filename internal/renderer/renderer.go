package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/Jaydee94/refcheck/internal/models"
)

// maxPathWidth bounds the file column so tables stay readable on deeply
// nested charts.
const maxPathWidth = 48

// PrintReportPretty formats and prints the run report as a color-coded table
// with a header restating the inputs and a final summary.
func PrintReportPretty(run models.RunReport, duration time.Duration) {
	fmt.Printf("Values file: %s\n", run.ValuesFile)
	fmt.Printf("Chart roots: %s\n", strings.Join(run.Roots, ", "))
	fmt.Printf("Template files discovered: %d\n", run.FilesDiscovered)

	if run.FilesScanned == 0 {
		fmt.Println(color.YellowString("No template files were scanned; check the chart root paths and file extensions"))
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"File", "Reference", "Status"})
	table.SetRowLine(true)
	table.SetAutoWrapText(false)

	for _, result := range run.Results {
		file := runewidth.Truncate(filepath.Join(result.Root, result.File), maxPathWidth, "…")
		if result.Error != "" {
			table.Append([]string{file, "", color.YellowString("skipped: %s", result.Error)})
			continue
		}
		for _, ref := range result.References {
			status := color.GreenString("✓ found")
			if !ref.Found {
				status = color.RedString("✗ missing")
			}
			table.Append([]string{file, ref.Path, status})
		}
	}
	table.Render()

	total := run.Found + run.Missing
	fmt.Printf("Summary: %d/%d references found (%d occurrences processed) in %s\n",
		run.Found, total, run.Occurrences, duration.Round(time.Millisecond))
	if run.Success {
		fmt.Println(color.GreenString("All references are present in the values file ✔"))
	} else {
		fmt.Println(color.RedString("%d references are missing from %s ✘", run.Missing, run.ValuesFile))
	}
}
