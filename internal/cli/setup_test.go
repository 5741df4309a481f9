package cli

import (
	"testing"

	"github.com/glyphforge/glyphforge/pkg/gen"
)

func TestParseSizes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []gen.Dimensions
		wantErr bool
	}{
		{"single", "32x48", []gen.Dimensions{{Width: 32, Height: 48}}, false},
		{"multiple", "32x48,64x96", []gen.Dimensions{{Width: 32, Height: 48}, {Width: 64, Height: 96}}, false},
		{"uppercase X", "32X48", []gen.Dimensions{{Width: 32, Height: 48}}, false},
		{"spaces", " 32x48 , 64x96 ", []gen.Dimensions{{Width: 32, Height: 48}, {Width: 64, Height: 96}}, false},
		{"trailing comma", "32x48,", []gen.Dimensions{{Width: 32, Height: 48}}, false},
		{"missing separator", "3248", nil, true},
		{"non-numeric", "axb", nil, true},
		{"empty", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSizes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSizes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sizes, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("size %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseOverrides(t *testing.T) {
	got, err := parseOverrides([]string{"Density Validator=approved sparse glyph"})
	if err != nil {
		t.Fatalf("parseOverrides failed: %v", err)
	}
	ov, ok := got["Density Validator"]
	if !ok {
		t.Fatal("override missing")
	}
	if !ov.Overridden || ov.Reason != "approved sparse glyph" {
		t.Errorf("override = %+v", ov)
	}

	for _, bad := range []string{"no-reason", "=reason only", "Name="} {
		if _, err := parseOverrides([]string{bad}); err == nil {
			t.Errorf("parseOverrides(%q) accepted invalid spec", bad)
		}
	}

	empty, err := parseOverrides(nil)
	if err != nil || empty != nil {
		t.Errorf("parseOverrides(nil) = %v, %v; want nil, nil", empty, err)
	}
}

func TestBuildRequest(t *testing.T) {
	opts := generateOpts{
		sizes:     "32x48,64x96",
		seed:      7,
		seedSet:   true,
		outputs:   []string{"skeletonized"},
		edgeCases: []string{"rotated"},
	}
	req, err := opts.buildRequest("notehead")
	if err != nil {
		t.Fatalf("buildRequest failed: %v", err)
	}
	if req.Kind != "notehead" || len(req.Dimensions) != 2 {
		t.Errorf("unexpected request: %+v", req)
	}
	if req.Seed == nil || *req.Seed != 7 {
		t.Error("seed not carried")
	}
	if len(req.Outputs) != 1 || req.Outputs[0] != "skeletonized" {
		t.Errorf("outputs = %v", req.Outputs)
	}
	if len(req.EdgeCases) != 1 || req.EdgeCases[0] != "rotated" {
		t.Errorf("edge cases = %v", req.EdgeCases)
	}

	opts.seedSet = false
	req, err = opts.buildRequest("notehead")
	if err != nil {
		t.Fatal(err)
	}
	if req.Seed != nil {
		t.Error("seed set without --seed flag")
	}

	if _, err := opts.buildRequest("Bad Kind"); err != nil {
		// Kind validation happens inside the forge, not here.
		t.Errorf("buildRequest must not validate the kind: %v", err)
	}

	opts.outputs = []string{"vectorized"}
	if _, err := opts.buildRequest("notehead"); err == nil {
		t.Error("invalid output form accepted")
	}
}

func TestBatchModelAdvances(t *testing.T) {
	ran := []string{}
	m := NewBatchModel([]string{"stem", "flag"}, func(kind string) batchResult {
		ran = append(ran, kind)
		return batchResult{Kind: kind, Capsules: 1, Valid: true}
	})

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	msg := cmd()
	next, cmd := m.Update(msg)
	m = next.(BatchModel)
	if len(m.Results) != 1 || m.Results[0].Kind != "stem" {
		t.Fatalf("results after first run: %+v", m.Results)
	}
	if cmd == nil {
		t.Fatal("expected a command for the second kind")
	}
	next, _ = m.Update(cmd())
	m = next.(BatchModel)
	if len(m.Results) != 2 {
		t.Fatalf("results after second run: %+v", m.Results)
	}
	if len(ran) != 2 || ran[1] != "flag" {
		t.Errorf("ran = %v", ran)
	}
	if view := m.View(); view == "" {
		t.Error("empty view")
	}
}

func TestKindListModelNavigation(t *testing.T) {
	m := NewKindListModel([]string{"barline", "notehead", "stem"})

	if m.Cursor != 0 {
		t.Fatalf("initial cursor = %d", m.Cursor)
	}
	m.Cursor = 1
	m.Selected = m.Kinds[m.Cursor]
	if m.Selected != "notehead" {
		t.Errorf("selected = %q", m.Selected)
	}
	if view := m.View(); view == "" {
		t.Error("empty view")
	}
}
