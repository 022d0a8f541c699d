// Package loader parses preference documents: an ordered character list plus
// each player's ranked characters. Player order in the document decides row
// order in the score matrix, so both parsers preserve it; a plain
// map[string][]string decode would lose it.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/elrathor/casting-api-go/pkg/casting"
	"gopkg.in/yaml.v3"
)

// Document is the persisted preference contract:
//
//	{"characters": ["A", "B"], "players": {"p1": ["B", "A"], "p2": ["A"]}}
//
// Unknown top-level keys are ignored so API bodies can carry options next to
// the document.
type Document struct {
	Characters []string
	Players    []casting.PlayerPrefs
}

// ParseFile loads a document from disk, picking the parser by extension
// (.yaml/.yml for YAML, anything else JSON).
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes a JSON document, preserving the order of the players
// object via token-stream decoding.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("preference document: %w", err)
	}

	doc := &Document{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("preference document: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("preference document: unexpected token %v", tok)
		}

		switch key {
		case "characters":
			if err := dec.Decode(&doc.Characters); err != nil {
				return nil, fmt.Errorf("characters: %w", err)
			}
		case "players":
			players, err := decodePlayersJSON(dec)
			if err != nil {
				return nil, err
			}
			doc.Players = players
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("preference document: %w", err)
			}
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("preference document: %w", err)
	}
	return doc, validate(doc)
}

func decodePlayersJSON(dec *json.Decoder) ([]casting.PlayerPrefs, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}
	var players []casting.PlayerPrefs
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("players: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("players: unexpected token %v", tok)
		}
		var ranked []string
		if err := dec.Decode(&ranked); err != nil {
			return nil, fmt.Errorf("player %q: %w", name, err)
		}
		players = append(players, casting.PlayerPrefs{Name: name, Ranked: ranked})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}
	return players, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// ParseYAML decodes a YAML document through yaml.Node so the players mapping
// keeps its written order.
func ParseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("preference document: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("preference document: empty")
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, errors.New("preference document: top level must be a mapping")
	}

	doc := &Document{}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		val := mapping.Content[i+1]

		switch key {
		case "characters":
			if err := val.Decode(&doc.Characters); err != nil {
				return nil, fmt.Errorf("characters: %w", err)
			}
		case "players":
			if val.Kind != yaml.MappingNode {
				return nil, errors.New("players: must be a mapping of player to ranked characters")
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				name := val.Content[j].Value
				var ranked []string
				if err := val.Content[j+1].Decode(&ranked); err != nil {
					return nil, fmt.Errorf("player %q: %w", name, err)
				}
				doc.Players = append(doc.Players, casting.PlayerPrefs{Name: name, Ranked: ranked})
			}
		}
	}
	return doc, validate(doc)
}

// validate checks document structure. Preference contents (membership,
// per-list duplicates) are the matrix builder's job; this only rejects
// documents that are malformed on their face.
func validate(doc *Document) error {
	if len(doc.Characters) == 0 {
		return errors.New("preference document: characters list is empty")
	}
	seen := make(map[string]bool, len(doc.Characters))
	for _, c := range doc.Characters {
		if seen[c] {
			return &casting.DuplicateCharacterError{Character: c}
		}
		seen[c] = true
	}
	if len(doc.Players) == 0 {
		return errors.New("preference document: players mapping is empty")
	}
	names := make(map[string]bool, len(doc.Players))
	for _, p := range doc.Players {
		if names[p.Name] {
			return fmt.Errorf("preference document: player %q appears more than once", p.Name)
		}
		names[p.Name] = true
	}
	return nil
}
