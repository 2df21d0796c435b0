package check

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DocExtension is the suffix that marks a file as a query document.
const DocExtension = ".teq.yaml"

// IsDocumentPath reports whether path names a query document.
func IsDocumentPath(path string) bool {
	return strings.HasSuffix(path, DocExtension)
}

// Scan collects every document under root, in path order. A root that
// is itself a document file is returned as is.
func Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", root, err)
	}

	if !info.IsDir() {
		if !IsDocumentPath(root) {
			return nil, fmt.Errorf("%s is not a %s file", root, DocExtension)
		}
		return []string{root}, nil
	}

	var docs []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && IsDocumentPath(path) {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(docs)
	return docs, nil
}
