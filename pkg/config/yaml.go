package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToYAML renders the configuration as YAML with two-space indentation.
// A nil config renders as nothing.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var out strings.Builder
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config as yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("flush yaml encoder: %w", err)
	}
	return []byte(out.String()), nil
}

// ToYAMLWithHeader renders the configuration after a block of "# " comment
// lines and one blank line.
func (c *Config) ToYAMLWithHeader(lines ...string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || len(lines) == 0 {
		return body, err
	}

	header := "# " + strings.Join(lines, "\n# ") + "\n\n"
	return append([]byte(header), body...), nil
}
