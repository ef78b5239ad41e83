package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errInvalidList = errors.New("must be an array of strings or a string")

// IngredientList accepts a JSON array of strings or a single string.
// A string holding a JSON array is decoded as that array; any other
// string is split on commas.
type IngredientList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *IngredientList) UnmarshalJSON(data []byte) error {
	items, err := decodeFlexibleList(data, ",")
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// InstructionList accepts a JSON array of strings or a single string.
// A string holding a JSON array is decoded as that array; any other
// string is split on newlines.
type InstructionList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *InstructionList) UnmarshalJSON(data []byte) error {
	items, err := decodeFlexibleList(data, "\n")
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func decodeFlexibleList(data []byte, sep string) ([]string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		return cleanList(items), nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errInvalidList
	}

	if err := json.Unmarshal([]byte(s), &items); err == nil {
		return cleanList(items), nil
	}

	return cleanList(strings.Split(s, sep)), nil
}

// cleanList trims every item and drops the empty ones.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
