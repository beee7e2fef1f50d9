package extract

import (
	"encoding/json"
	"reflect"
	"testing"
)

// decode parses a JSON document the way the fetch path does.
func decode(t *testing.T, s string) any {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		t.Fatalf("bad test document: %v", err)
	}
	return doc
}

func TestCompile_Invalid(t *testing.T) {
	if _, err := Compile("player..karma"); err == nil {
		t.Error("Compile() error = nil for malformed expression")
	}
}

func TestQuery_Search(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		doc       string
		wantFound bool
		wantData  any
	}{
		{
			name:      "top-level field",
			expr:      "karma",
			doc:       `{"karma": 100}`,
			wantFound: true,
			wantData:  float64(100),
		},
		{
			name:      "nested field",
			expr:      "player.karma",
			doc:       `{"player": {"karma": 100}}`,
			wantFound: true,
			wantData:  float64(100),
		},
		{
			name:      "array index",
			expr:      "profiles[0].cute_name",
			doc:       `{"profiles": [{"cute_name": "Mango"}]}`,
			wantFound: true,
			wantData:  "Mango",
		},
		{
			name:      "missing field is absent",
			expr:      "player.karma",
			doc:       `{"player": {"experience": 5}}`,
			wantFound: false,
		},
		{
			name:      "missing branch is absent",
			expr:      "player.karma",
			doc:       `{"guild": {}}`,
			wantFound: false,
		},
		{
			name:      "explicit null is found",
			expr:      "player.karma",
			doc:       `{"player": {"karma": null}}`,
			wantFound: true,
			wantData:  nil,
		},
		{
			name:      "false is found",
			expr:      "player.online",
			doc:       `{"player": {"online": false}}`,
			wantFound: true,
			wantData:  false,
		},
		{
			name:      "subtree result",
			expr:      "player",
			doc:       `{"player": {"karma": 1}}`,
			wantFound: true,
			wantData:  map[string]any{"karma": float64(1)},
		},
		{
			name:      "nulls inside a subtree survive as nulls",
			expr:      "player",
			doc:       `{"player": {"karma": null, "rank": "MVP"}}`,
			wantFound: true,
			wantData:  map[string]any{"karma": nil, "rank": "MVP"},
		},
		{
			name:      "nulls inside an array survive as nulls",
			expr:      "items",
			doc:       `{"items": [1, null, "x"]}`,
			wantFound: true,
			wantData:  []any{float64(1), nil, "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.expr, err)
			}

			res, err := q.Search(decode(t, tt.doc))
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			if res.Found != tt.wantFound {
				t.Fatalf("Search() Found = %v, want %v", res.Found, tt.wantFound)
			}
			if tt.wantFound && !reflect.DeepEqual(res.Data, tt.wantData) {
				t.Errorf("Search() Data = %#v, want %#v", res.Data, tt.wantData)
			}
		})
	}
}

func TestQuery_SearchEvaluatorError(t *testing.T) {
	q, err := Compile("length(player)")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	// length() of a number is a type error in the evaluator
	if _, err := q.Search(decode(t, `{"player": 5}`)); err == nil {
		t.Error("Search() error = nil, want evaluator error")
	}
}

func TestQuery_Expression(t *testing.T) {
	q, err := Compile("player.karma")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if q.Expression() != "player.karma" {
		t.Errorf("Expression() = %q", q.Expression())
	}
}

func TestSentinelNulls_DoesNotMutateDocument(t *testing.T) {
	doc := decode(t, `{"player": {"karma": null}}`)

	q, err := Compile("player.karma")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := q.Search(doc); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// the caller's document still has an ordinary nil
	player := doc.(map[string]any)["player"].(map[string]any)
	if player["karma"] != nil {
		t.Errorf("document mutated: karma = %#v, want nil", player["karma"])
	}
}
