package main

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"formSheet/contracts"
)

// LoadFormDefinition reads a form authored as YAML or JSON
func LoadFormDefinition(path string) (*contracts.FormDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read form `%s`", path)
	}
	return ParseFormDefinition(data)
}

func ParseFormDefinition(data []byte) (*contracts.FormDefinition, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse form")
	}

	// JSON tags and custom unmarshalers of the contracts types apply to both formats
	encoded, err := sonic.Marshal(stringKeys(raw))
	if err != nil {
		return nil, errors.Wrap(err, "encode form")
	}

	definition := &contracts.FormDefinition{}
	if err = sonic.Unmarshal(encoded, definition); err != nil {
		return nil, errors.Wrap(err, "decode form")
	}
	return definition, nil
}

// stringKeys turns the keys yaml decodes as numbers (row numbers) into strings
func stringKeys(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			typed[key] = stringKeys(item)
		}
		return typed
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, item := range typed {
			converted[fmt.Sprint(key)] = stringKeys(item)
		}
		return converted
	case []any:
		for i, item := range typed {
			typed[i] = stringKeys(item)
		}
		return typed
	default:
		return value
	}
}
