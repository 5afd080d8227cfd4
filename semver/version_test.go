package semver

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Version
		wantErr bool
	}{
		{
			name: "stable",
			in:   "1.2.3",
			want: Version{StableComponent: Stable{1, 2, 3}},
		},
		{
			name: "pre-release",
			in:   "2.0.0-rc.0",
			want: Version{StableComponent: Stable{2, 0, 0}, PreComponent: &PreComponent{Label: "rc", Number: 0}},
		},
		{
			name:    "malformed",
			in:      "not-a-version",
			wantErr: true,
		},
		{
			name:    "pre-release without number",
			in:      "1.0.0-rc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q): expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error: %v", tt.in, err)
			}
			if got.Compare(tt.want) != 0 || got.IsStable() != tt.want.IsStable() {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	v := MustParse("1.2.3-rc.4")
	if got, want := v.String(), "1.2.3-rc.4"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := MustParse("1.0.0").String(), "1.0.0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.0.0", 1},
		{"1.0.0-rc.0", "1.0.0", -1}, // stable sorts above any pre sharing the stable
		{"1.0.0", "1.0.0-rc.0", 1},
		{"1.0.0-rc.0", "1.0.0-rc.1", -1},
		{"1.0.0-beta.5", "1.0.0-rc.0", -1}, // labels compare lexically before numbers: beta < rc
	}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		if got := a.Compare(b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		prefix string
		tag    string
		wantOK bool
		want   string
	}{
		{"", "v1.2.3", true, "1.2.3"},
		{"", "1.2.3", false, ""},
		{"pkg", "pkg/v1.2.3", true, "1.2.3"},
		{"pkg", "v1.2.3", false, ""},
		{"", "not-a-tag", false, ""},
	}
	for _, tt := range tests {
		got, ok := ParseTag(tt.prefix, tt.tag)
		if ok != tt.wantOK {
			t.Errorf("ParseTag(%q, %q) ok = %v, want %v", tt.prefix, tt.tag, ok, tt.wantOK)
			continue
		}
		if ok && got.String() != tt.want {
			t.Errorf("ParseTag(%q, %q) = %q, want %q", tt.prefix, tt.tag, got.String(), tt.want)
		}
	}
}

func TestBumpStableZeroMajorSpecialCase(t *testing.T) {
	tests := []struct {
		start Stable
		rule  StableRule
		want  Stable
	}{
		{Stable{0, 3, 1}, RuleMajor, Stable{0, 4, 0}}, // Major -> minor bump under 0.x
		{Stable{0, 3, 1}, RuleMinor, Stable{0, 3, 2}}, // Minor -> patch bump under 0.x
		{Stable{0, 3, 1}, RulePatch, Stable{0, 3, 2}}, // Patch always increments patch
		{Stable{1, 3, 1}, RuleMajor, Stable{2, 0, 0}},
	}
	for _, tt := range tests {
		got := bumpStable(tt.start, tt.rule)
		if got != tt.want {
			t.Errorf("bumpStable(%v, %v) = %v, want %v", tt.start, tt.rule, got, tt.want)
		}
	}
}
