// Package ingest decodes batch output from the upstream extraction step into
// chart document candidates.
//
// The extraction step runs vision OCR over a directory of chart images and
// writes one results file: a JSON object mapping image filename to the raw
// model output for that image. The model output is text, usually the chart
// JSON wrapped in a Markdown code fence, so each entry is unfenced and then
// decoded into a [chart.Candidate].
//
// Entries are independent: a malformed entry carries its own error and never
// affects any other entry in the batch. Items are returned in sorted filename
// order so batch runs are deterministic.
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/chartdoc/pkg/chart"
)

// Item is one extraction result: the source image filename and either the
// decoded candidate or the per-entry decode error.
type Item struct {
	Source    string
	Candidate chart.Candidate
	Err       error
}

// ReadResults decodes an extraction results file from r.
// The returned items are sorted by source filename. Only a malformed results
// file itself is an error; malformed entries are reported per item.
func ReadResults(r io.Reader) ([]Item, error) {
	var results map[string]string
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}

	sources := make([]string, 0, len(results))
	for src := range results {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	items := make([]Item, 0, len(sources))
	for _, src := range sources {
		item := Item{Source: src}
		c, err := chart.DecodeCandidateBytes([]byte(Unfence(results[src])))
		if err != nil {
			item.Err = fmt.Errorf("%s: %w", src, err)
		} else {
			item.Candidate = c
		}
		items = append(items, item)
	}
	return items, nil
}

// ReadResultsFile reads an extraction results file from disk.
func ReadResultsFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadResults(f)
}

// ReadDir reads every .json file in dir as one candidate document each.
// This covers extraction runs that write one file per image instead of a
// single results file. Items are sorted by filename; a malformed file is
// reported per item, like a malformed results entry.
func ReadDir(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var items []Item
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		item := Item{Source: name}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			item.Err = fmt.Errorf("%s: %w", name, err)
			items = append(items, item)
			continue
		}
		c, err := chart.DecodeCandidateBytes([]byte(Unfence(string(data))))
		if err != nil {
			item.Err = fmt.Errorf("%s: %w", name, err)
		} else {
			item.Candidate = c
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Source < items[j].Source })
	return items, nil
}

// Unfence strips a surrounding Markdown code fence from model output.
// Vision models commonly wrap the requested JSON in ```json ... ```; anything
// without a leading fence is returned trimmed but otherwise untouched.
func Unfence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line (``` or ```json).
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}

	// Drop the closing fence if present.
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
