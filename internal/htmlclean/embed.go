package htmlclean

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

func loadEmbeddedRules() ([]Rule, error) {
	var table []Rule
	if err := yaml.Unmarshal(rulesYAML, &table); err != nil {
		return nil, fmt.Errorf("unmarshaling rules.yaml: %w", err)
	}
	return table, nil
}
