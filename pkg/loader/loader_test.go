package loader

import (
	"reflect"
	"testing"
)

const jsonDoc = `{
	"characters": ["Knight", "Healer", "Spy"],
	"players": {
		"Zoe": ["Spy", "Knight", "Healer"],
		"Abe": ["Knight", "Healer", "Spy"],
		"Mia": ["Healer", "Spy", "Knight"]
	}
}`

func TestParseJSONPreservesPlayerOrder(t *testing.T) {
	doc, err := ParseJSON([]byte(jsonDoc))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}

	// Zoe comes before Abe in the document even though a map would sort
	// them the other way.
	wantOrder := []string{"Zoe", "Abe", "Mia"}
	for i, want := range wantOrder {
		if doc.Players[i].Name != want {
			t.Errorf("player %d = %q, want %q", i, doc.Players[i].Name, want)
		}
	}
	if !reflect.DeepEqual(doc.Characters, []string{"Knight", "Healer", "Spy"}) {
		t.Errorf("characters = %v", doc.Characters)
	}
	if !reflect.DeepEqual(doc.Players[0].Ranked, []string{"Spy", "Knight", "Healer"}) {
		t.Errorf("Zoe ranked = %v", doc.Players[0].Ranked)
	}
}

func TestParseJSONIgnoresExtraKeys(t *testing.T) {
	body := `{"scoring": "weighted", "characters": ["A"], "players": {"p": ["A"]}, "solver": "optimal"}`
	doc, err := ParseJSON([]byte(body))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	if len(doc.Characters) != 1 || len(doc.Players) != 1 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestParseJSONRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"empty characters":  `{"characters": [], "players": {"p": []}}`,
		"no players":        `{"characters": ["A"], "players": {}}`,
		"duplicate chars":   `{"characters": ["A", "A"], "players": {"p": ["A"], "q": []}}`,
		"not an object":     `[1, 2]`,
		"players not a map": `{"characters": ["A"], "players": ["p"]}`,
	}
	for name, body := range cases {
		if _, err := ParseJSON([]byte(body)); err == nil {
			t.Errorf("%s: ParseJSON should fail", name)
		}
	}
}

func TestParseYAMLPreservesPlayerOrder(t *testing.T) {
	body := `
characters:
  - Knight
  - Healer
players:
  Zoe: [Healer, Knight]
  Abe: [Knight, Healer]
`
	doc, err := ParseYAML([]byte(body))
	if err != nil {
		t.Fatalf("ParseYAML error: %v", err)
	}
	if doc.Players[0].Name != "Zoe" || doc.Players[1].Name != "Abe" {
		t.Errorf("player order = %q, %q, want Zoe, Abe", doc.Players[0].Name, doc.Players[1].Name)
	}
	if !reflect.DeepEqual(doc.Players[0].Ranked, []string{"Healer", "Knight"}) {
		t.Errorf("Zoe ranked = %v", doc.Players[0].Ranked)
	}
}

func TestParseYAMLRejectsEmpty(t *testing.T) {
	if _, err := ParseYAML([]byte("")); err == nil {
		t.Error("ParseYAML of empty input should fail")
	}
}

func TestJSONAndYAMLAgree(t *testing.T) {
	yamlBody := `
characters: [Knight, Healer, Spy]
players:
  Zoe: [Spy, Knight, Healer]
  Abe: [Knight, Healer, Spy]
  Mia: [Healer, Spy, Knight]
`
	fromJSON, err := ParseJSON([]byte(jsonDoc))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	fromYAML, err := ParseYAML([]byte(yamlBody))
	if err != nil {
		t.Fatalf("ParseYAML error: %v", err)
	}
	if !reflect.DeepEqual(fromJSON, fromYAML) {
		t.Errorf("parsers disagree:\njson: %+v\nyaml: %+v", fromJSON, fromYAML)
	}
}
