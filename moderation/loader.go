package moderation

import (
	"bufio"
	"bytes"
	"io/fs"
	"path"
	"strings"

	"world-sync/errors"

	"github.com/samber/lo"
)

// CensoredData carries the loaded words and the dictionaries they came from.
type CensoredData struct {
	Words     []string
	Languages []string
}

// CensoredLoader reads blacklisted words, one per line, from the .txt files of a directory.
type CensoredLoader struct {
	fs fs.FS
}

func NewCensoredLoader(f fs.FS) *CensoredLoader {
	return &CensoredLoader{fs: f}
}

// LoadAll merges every dictionary of dir with the extra words and deduplicates them.
// Each file name is a language, "fr.txt" gives "fr".
func (l *CensoredLoader) LoadAll(dir string, extra ...string) (*CensoredData, error) {
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	var languages []string
	words := lo.Filter(lo.Map(extra, func(w string, _ int) string { return strings.TrimSpace(w) }),
		func(w string, _ int) bool { return w != "" })

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(l.fs, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// Scanner copes with \r\n endings
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				words = append(words, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	words = lo.Uniq(words)
	if len(words) == 0 {
		return nil, errors.ErrEmptyWords
	}
	return &CensoredData{Words: words, Languages: languages}, nil
}
