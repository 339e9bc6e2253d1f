package report

import "github.com/Jaydee94/refcheck/internal/models"

// Aggregate combines per-file results into the final RunReport. The
// "occurrences" statistic counts every extracted reference; found and missing
// count distinct references per file. Files with read errors are excluded
// from the statistics but stay in the result list for rendering.
//
// A run that scanned zero files is not vacuously successful: it almost always
// means a misconfigured path or extension filter, so Success stays false.
func Aggregate(results []models.FileResult) models.RunReport {
	run := models.RunReport{
		FilesDiscovered: len(results),
		Results:         results,
	}
	for _, result := range results {
		if result.Error != "" {
			continue
		}
		run.FilesScanned++
		for _, ref := range result.References {
			run.Occurrences += ref.Occurrences
			if ref.Found {
				run.Found++
			} else {
				run.Missing++
			}
		}
	}
	run.Success = run.Missing == 0 && run.FilesScanned > 0
	return run
}
