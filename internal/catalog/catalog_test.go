package catalog

import (
	"testing"
)

func TestParseEmbeddedCatalog(t *testing.T) {
	c, err := loadEmbedded()
	if err != nil {
		t.Fatalf("embedded catalog must parse: %v", err)
	}
	if len(c.Sections) != 10 {
		t.Fatalf("sections: got %d, want 10", len(c.Sections))
	}
	if len(c.Platforms) != 6 {
		t.Fatalf("platforms: got %d, want 6", len(c.Platforms))
	}
	if len(c.Statuses) != 5 {
		t.Fatalf("statuses: got %d, want 5", len(c.Statuses))
	}
}

func TestValidators(t *testing.T) {
	c, err := loadEmbedded()
	if err != nil {
		t.Fatalf("embedded catalog must parse: %v", err)
	}
	if !c.ValidSection("الرياضة") {
		t.Fatalf("sports section should validate")
	}
	if c.ValidSection("nonexistent") {
		t.Fatalf("unknown section must not validate")
	}
	if !c.ValidPlatform("فيسبوك") {
		t.Fatalf("facebook platform should validate")
	}
	if !c.ValidStatus("عاجل") {
		t.Fatalf("urgent status should validate")
	}
	if !c.ValidSection("  عام ") {
		t.Fatalf("validation should trim surrounding whitespace")
	}
}

func TestParseRejectsBrokenCatalog(t *testing.T) {
	cases := map[string]string{
		"wrong kind":     "catalog: other\nsections: [{id: a, name: A}]\nplatforms: [{id: b, name: B}]\nstatuses: [{id: c, name: C}]\n",
		"missing lists":  "catalog: newsroom\nsections: [{id: a, name: A}]\n",
		"duplicate name": "catalog: newsroom\nsections: [{id: a, name: A}, {id: b, name: A}]\nplatforms: [{id: p, name: P}]\nstatuses: [{id: s, name: S}]\n",
		"empty id":       "catalog: newsroom\nsections: [{id: \"\", name: A}]\nplatforms: [{id: p, name: P}]\nstatuses: [{id: s, name: S}]\n",
	}
	for name, doc := range cases {
		if _, err := parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}
