package biomodel

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSideCompounds reads a side compound identifier list. YAML files hold a
// sequence of identifiers; any other file holds one identifier per line, with
// blank lines and '#' comments ignored.
func LoadSideCompounds(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read side compounds: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var ids []string
		if err := yaml.Unmarshal(data, &ids); err != nil {
			return nil, fmt.Errorf("parse side compounds %s: %w", path, err)
		}
		return dedupe(ids), nil
	default:
		return ParseSideCompounds(bytes.NewReader(data))
	}
}

// ParseSideCompounds reads one identifier per line.
func ParseSideCompounds(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan side compounds: %w", err)
	}
	return dedupe(ids), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
