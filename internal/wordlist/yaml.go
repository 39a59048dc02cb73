package wordlist

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLoader reads either a top-level sequence of strings or a mapping
// with a "words" sequence.
type YAMLLoader struct{}

type yamlWordlist struct {
	Words []string `yaml:"words"`
}

// Load implements Loader.
func (YAMLLoader) Load(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var raw []string
	if seqErr := yaml.Unmarshal(data, &raw); seqErr != nil {
		var doc yamlWordlist
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml wordlist: %w", err)
		}
		raw = doc.Words
	}

	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words, nil
}
