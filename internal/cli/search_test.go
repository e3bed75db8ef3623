package cli

import "testing"

func TestParseAnchors(t *testing.T) {
	tests := []struct {
		name    string
		specs   []string
		want    []anchor
		wantErr bool
	}{
		{"defaults to grid center", nil, []anchor{{5, 3}}, false},
		{"single anchor", []string{"2,4"}, []anchor{{2, 4}}, false},
		{"multiple anchors", []string{"0,0", "9,5"}, []anchor{{0, 0}, {9, 5}}, false},
		{"whitespace tolerated", []string{" 3 , 1 "}, []anchor{{3, 1}}, false},
		{"missing comma", []string{"34"}, nil, true},
		{"non-numeric", []string{"a,b"}, nil, true},
		{"too many parts", []string{"1,2,3"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnchors(tt.specs, 10, 6)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAnchors failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("anchor count: got %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("anchor %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
