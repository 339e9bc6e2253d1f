package finder

import (
	"os"
	"path/filepath"
	"strings"
)

// templateExtensions is the allow-list of file suffixes scanned for variable
// references. .tpl covers Helm partials/helpers.
var templateExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".tpl":  true,
}

// FindTemplateFiles recursively enumerates template files under root, in
// stable walk order. Paths are returned relative to root.
func FindTemplateFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		if !templateExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}
