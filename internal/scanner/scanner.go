// Package scanner walks chart roots and checks every extracted variable
// reference against the loaded values document.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Jaydee94/refcheck/internal/extractor"
	"github.com/Jaydee94/refcheck/internal/finder"
	"github.com/Jaydee94/refcheck/internal/models"
	"github.com/Jaydee94/refcheck/internal/values"
)

// Scanner ties the extractor and the values document together for a run.
// The values document is read-only, so a single Scanner may check files
// concurrently.
type Scanner struct {
	doc    *values.Document
	ext    *extractor.Extractor
	logger zerolog.Logger
}

// New returns a Scanner checking references against doc.
func New(doc *values.Document, ext *extractor.Extractor, logger zerolog.Logger) *Scanner {
	return &Scanner{doc: doc, ext: ext, logger: logger}
}

// Scan enumerates template files under each root and produces one FileResult
// per file, in enumeration order. A root that does not exist is a fatal
// configuration error; an unreadable file is recorded on its FileResult and
// the scan continues.
func (s *Scanner) Scan(roots []string) ([]models.FileResult, error) {
	type job struct {
		root string
		file string
	}
	var jobs []job
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("chart root %s does not exist: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("chart root %s is not a directory", root)
		}
		files, err := finder.FindTemplateFiles(root)
		if err != nil {
			return nil, fmt.Errorf("traversing chart root %s: %w", root, err)
		}
		for _, file := range files {
			jobs = append(jobs, job{root: root, file: file})
		}
	}

	// Files are independent and the values document is immutable, so the
	// checks run concurrently. Results are written by index to keep the
	// report in enumeration order regardless of completion order.
	results := make([]models.FileResult, len(jobs))
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, j := range jobs {
		go func(i int, j job) {
			defer wg.Done()
			results[i] = s.scanFile(j.root, j.file)
		}(i, j)
	}
	wg.Wait()

	for _, result := range results {
		if result.Error != "" {
			s.logger.Warn().
				Str("file", filepath.Join(result.Root, result.File)).
				Msg(result.Error)
		}
	}
	return results, nil
}

// scanFile reads one template file and resolves its distinct references.
func (s *Scanner) scanFile(root, file string) models.FileResult {
	result := models.FileResult{Root: root, File: file}
	data, err := os.ReadFile(filepath.Join(root, file))
	if err != nil {
		result.Error = fmt.Sprintf("unreadable template file: %v", err)
		return result
	}
	result.References = s.checkReferences(s.ext.Extract(string(data)))
	return result
}

// checkReferences deduplicates extracted paths preserving first-seen order,
// counts occurrences, and resolves each distinct path once.
func (s *Scanner) checkReferences(paths []string) []models.Reference {
	var refs []models.Reference
	index := map[string]int{}
	for _, path := range paths {
		if i, seen := index[path]; seen {
			refs[i].Occurrences++
			continue
		}
		index[path] = len(refs)
		refs = append(refs, models.Reference{
			Path:        path,
			Found:       s.doc.Resolve(path),
			Occurrences: 1,
		})
	}
	return refs
}
