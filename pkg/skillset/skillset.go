// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package skillset turns free-form skill input into an ordered set of tags.

Input arrives either as a JSON array or as one comma-delimited string. Both
forms go through the same pipeline: split on commas, trim, NFC-normalize,
drop empties and drop repeats while keeping first-seen order.
*/
package skillset

import (
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrShape is returned when the JSON value is neither a string nor an array of strings.
var ErrShape = errors.New("skillset: expected a string or an array of strings")

// Set is an ordered, duplicate-free list of skills.
type Set []string

// Parse splits a comma-delimited string into a [Set].
//
//	Parse("go, rust ,  , ts") // Set{"go", "rust", "ts"}
func Parse(delimited string) Set {
	return From(strings.Split(delimited, ","))
}

// From normalizes already-split candidates. Each candidate may itself contain commas.
func From(candidates []string) Set {
	seen := make(map[string]struct{}, len(candidates))
	out := make(Set, 0, len(candidates))

	for _, candidate := range candidates {
		for _, part := range strings.Split(candidate, ",") {
			clean := norm.NFC.String(strings.TrimSpace(part))
			if clean == "" {
				continue
			}
			if _, dup := seen[clean]; dup {
				continue
			}
			seen[clean] = struct{}{}
			out = append(out, clean)
		}
	}

	return out
}

// UnmarshalJSON accepts `"a, b"`, `["a", "b"]` or null.
func (s *Set) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = nil
		return nil
	}

	var delimited string
	if err := json.Unmarshal(data, &delimited); err == nil {
		*s = Parse(delimited)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return ErrShape
	}
	*s = From(list)
	return nil
}

// MarshalJSON always writes an array, never null.
func (s Set) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
