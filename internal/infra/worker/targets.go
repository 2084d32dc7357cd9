package worker

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"readability-audit/internal/usecase/audit"
)

// targetsFile is the on-disk layout of the audit targets YAML:
//
//	targets:
//	  - url: https://example.com/blog/post
//	    languages: [english]
//	  - url: https://example.de/feed.xml
//	    feed: true
//	    languages: [german]
type targetsFile struct {
	Targets []targetEntry `yaml:"targets"`
}

type targetEntry struct {
	URL       string   `yaml:"url"`
	Feed      bool     `yaml:"feed"`
	Languages []string `yaml:"languages"`
}

// LoadTargets reads and parses the audit targets YAML file at path.
// Entries without a URL are rejected. Feed entries are returned separately
// from page entries so the worker can expand feeds before auditing.
func LoadTargets(path string) (pages []audit.Target, feeds []audit.Target, err error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read targets file %s: %w", path, err)
	}

	var file targetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse targets file %s: %w", path, err)
	}

	for i, entry := range file.Targets {
		if entry.URL == "" {
			return nil, nil, fmt.Errorf("targets file %s: entry %d has no url", path, i)
		}
		target := audit.Target{URL: entry.URL, Languages: entry.Languages}
		if entry.Feed {
			feeds = append(feeds, target)
		} else {
			pages = append(pages, target)
		}
	}

	if len(pages) == 0 && len(feeds) == 0 {
		return nil, nil, fmt.Errorf("targets file %s: no targets defined", path)
	}

	return pages, feeds, nil
}
