package store

import (
	"bufio"
	"io"
	"strings"

	"github.com/openbiodata/belgraph/errors"
)

// NamespaceFile is a parsed .belns resource: its keyword from the
// [Namespace] section and the name-to-encoding map from [Values].
type NamespaceFile struct {
	Keyword string
	Values  map[string]string
}

// ParseNamespaceFile reads the INI-style .belns format: bracketed section
// headers, Key=value properties, and a [Values] section of name|encoding
// lines.
func ParseNamespaceFile(r io.Reader) (*NamespaceFile, error) {
	ns := &NamespaceFile{Values: map[string]string{}}
	section := ""

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			continue
		}

		switch section {
		case "Namespace":
			if key, value, ok := strings.Cut(line, "="); ok && strings.TrimSpace(key) == "Keyword" {
				ns.Keyword = strings.TrimSpace(value)
			}
		case "Values":
			name, encoding, _ := strings.Cut(line, "|")
			name = strings.TrimSpace(name)
			if name != "" {
				ns.Values[name] = strings.TrimSpace(encoding)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read namespace file")
	}

	if len(ns.Values) == 0 {
		return nil, errors.New("namespace file has no [Values] section")
	}
	return ns, nil
}
