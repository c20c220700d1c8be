package textutil

import "testing"

func TestSplitCombinedTitle(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantTitle  string
		wantArtist string
	}{
		{
			name:       "artist dash title",
			input:      "Imagine Dragons - Believer (Official Lyric Video)",
			wantTitle:  "Believer",
			wantArtist: "Imagine Dragons",
		},
		{
			name:       "variant prefix stays in title",
			input:      "Nightcore - Sweet Dreams",
			wantTitle:  "Nightcore - Sweet Dreams",
			wantArtist: "",
		},
		{
			name:       "sped up prefix stays in title",
			input:      "Sped Up - Some Song",
			wantTitle:  "Sped Up - Some Song",
			wantArtist: "",
		},
		{
			name:       "middle dot artist list",
			input:      "First · Second - Song Name",
			wantTitle:  "Song Name",
			wantArtist: "First , Second",
		},
		{
			name:       "fake artist left",
			input:      "Lyrics - Song Name",
			wantTitle:  "Song Name",
			wantArtist: "",
		},
		{
			name:       "reversed title dash artist",
			input:      "Pretty Rave Girl 2010 - S3RL",
			wantTitle:  "Pretty Rave Girl 2010",
			wantArtist: "S3RL",
		},
		{
			name:       "short right but left not long enough",
			input:      "Basshunter - DotA",
			wantTitle:  "DotA",
			wantArtist: "Basshunter",
		},
		{
			name:       "fake artist right",
			input:      "Song Name That Goes On - Audio",
			wantTitle:  "Song Name That Goes On",
			wantArtist: "",
		},
		{
			name:       "no separator",
			input:      "Just A Song Title (Lyrics)",
			wantTitle:  "Just A Song Title",
			wantArtist: "",
		},
		{
			name:       "empty half",
			input:      "Song Name - ",
			wantTitle:  "Song Name -",
			wantArtist: "",
		},
		{
			name:       "empty input",
			input:      "",
			wantTitle:  "",
			wantArtist: "",
		},
		{
			name:       "trailing lyrics annotation",
			input:      "Artist - Song // Lyrics",
			wantTitle:  "Song",
			wantArtist: "Artist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTitle, gotArtist := SplitCombinedTitle(tt.input)
			if gotTitle != tt.wantTitle || gotArtist != tt.wantArtist {
				t.Errorf("SplitCombinedTitle(%q) = (%q, %q), want (%q, %q)",
					tt.input, gotTitle, gotArtist, tt.wantTitle, tt.wantArtist)
			}
		})
	}
}

func TestStripExportMetadata(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"official lyric video", "Song (Official Lyric Video)", "Song"},
		{"official video bracketed", "Song [Official Video]", "Song"},
		{"bare lyrics suffix", "Song Lyrics", "Song"},
		{"pipe lyrics suffix", "Song || Lyrics", "Song"},
		{"nothing to strip", "Plain Song", "Plain Song"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripExportMetadata(tt.input); got != tt.want {
				t.Errorf("StripExportMetadata(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsFakeArtist(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Lyrics", true},
		{"official video", true},
		{"  Audio  ", true},
		{"Imagine Dragons", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsFakeArtist(tt.input); got != tt.want {
			t.Errorf("IsFakeArtist(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsVariantTerm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Nightcore", true},
		{"sped up", true},
		{"Slowed + Reverb", true},
		{"8D Audio", true},
		{"Imagine Dragons", false},
	}

	for _, tt := range tests {
		if got := IsVariantTerm(tt.input); got != tt.want {
			t.Errorf("IsVariantTerm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
