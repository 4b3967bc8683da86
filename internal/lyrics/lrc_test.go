package lyrics

import "testing"

func TestParse_Basic(t *testing.T) {
	lrc := `[ar:Test Artist]
[ti:Test Title]
[al:Test Album]
[00:12.34]First line
[00:15.67]Second line
[00:20.00]Third line`

	doc := Parse(lrc)

	if doc.Metadata["ar"] != "Test Artist" {
		t.Errorf("ar = %q, want %q", doc.Metadata["ar"], "Test Artist")
	}
	if doc.Metadata["ti"] != "Test Title" {
		t.Errorf("ti = %q, want %q", doc.Metadata["ti"], "Test Title")
	}
	if doc.Metadata["al"] != "Test Album" {
		t.Errorf("al = %q, want %q", doc.Metadata["al"], "Test Album")
	}

	if len(doc.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(doc.Lines))
	}

	expected := []Line{
		{Time: 12_340, Text: "First line"},
		{Time: 15_670, Text: "Second line"},
		{Time: 20_000, Text: "Third line"},
	}
	for i, exp := range expected {
		if doc.Lines[i] != exp {
			t.Errorf("Lines[%d] = %+v, want %+v", i, doc.Lines[i], exp)
		}
	}
}

func TestParse_MultipleTimestamps(t *testing.T) {
	// Chorus line repeated at three positions.
	doc := Parse(`[00:30.00][01:30.00][02:30.00]Chorus line`)

	if len(doc.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(doc.Lines))
	}
	wantTimes := []int64{30_000, 90_000, 150_000}
	for i, want := range wantTimes {
		if doc.Lines[i].Time != want {
			t.Errorf("Lines[%d].Time = %d, want %d", i, doc.Lines[i].Time, want)
		}
		if doc.Lines[i].Text != "Chorus line" {
			t.Errorf("Lines[%d].Text = %q, want %q", i, doc.Lines[i].Text, "Chorus line")
		}
	}
}

func TestParse_FractionalPrecision(t *testing.T) {
	doc := Parse(`[00:10.50]centiseconds
[00:20.500]milliseconds
[00:30]none
[00:40:25]colon separator`)

	if len(doc.Lines) != 4 {
		t.Fatalf("len(Lines) = %d, want 4", len(doc.Lines))
	}
	wantTimes := []int64{10_500, 20_500, 30_000, 40_250}
	for i, want := range wantTimes {
		if doc.Lines[i].Time != want {
			t.Errorf("Lines[%d].Time = %d, want %d", i, doc.Lines[i].Time, want)
		}
	}
}

func TestParse_SortsByTime(t *testing.T) {
	doc := Parse(`[00:30.00]third
[00:10.00]first
[00:20.00]second`)

	want := []string{"first", "second", "third"}
	for i, text := range want {
		if doc.Lines[i].Text != text {
			t.Errorf("Lines[%d].Text = %q, want %q", i, doc.Lines[i].Text, text)
		}
	}
}

func TestParse_SharedTimestampKeepsFileOrder(t *testing.T) {
	doc := Parse(`[00:10.00]one
[00:10.00]two
[00:10.00]three`)

	want := []string{"one", "two", "three"}
	for i, text := range want {
		if doc.Lines[i].Text != text {
			t.Errorf("Lines[%d].Text = %q, want %q", i, doc.Lines[i].Text, text)
		}
	}
}

func TestParse_OffsetMetadata(t *testing.T) {
	doc := Parse(`[offset:+500]
[00:10.00]line`)

	if doc.Offset() != 500 {
		t.Errorf("Offset = %d, want 500", doc.Offset())
	}

	doc = Parse(`[offset:-250]
[00:10.00]line`)
	if doc.Offset() != -250 {
		t.Errorf("Offset = %d, want -250", doc.Offset())
	}

	doc = Parse(`[00:10.00]line`)
	if doc.Offset() != 0 {
		t.Errorf("Offset without tag = %d, want 0", doc.Offset())
	}
}

func TestParse_IgnoresUnknownTagsAndPlainText(t *testing.T) {
	doc := Parse(`[xx:whatever]
just some text without timestamps
[00:05.00]real line`)

	if len(doc.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(doc.Lines))
	}
	if _, ok := doc.Metadata["xx"]; ok {
		t.Error("unknown metadata tag should not be recorded")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	doc := Parse("")
	if len(doc.Lines) != 0 {
		t.Errorf("len(Lines) = %d, want 0", len(doc.Lines))
	}
}

func TestLocate(t *testing.T) {
	lines := []Line{
		{Time: 0, Text: "a"},
		{Time: 1000, Text: "b"},
		{Time: 3000, Text: "c"},
	}

	tests := []struct {
		name      string
		currentMs int64
		offsetMs  int64
		want      int
	}{
		{"between lines", 1500, 0, 1},
		{"before start", -100, 0, -1},
		{"past end", 5000, 0, 2},
		{"exact match", 1000, 0, 1},
		{"at zero", 0, 0, 0},
		{"offset pushes forward", 900, 100, 1},
		{"offset pushes before start", 50, -100, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Locate(lines, tt.currentMs, tt.offsetMs); got != tt.want {
				t.Errorf("Locate(%d, %d) = %d, want %d", tt.currentMs, tt.offsetMs, got, tt.want)
			}
		})
	}
}

func TestLocate_Empty(t *testing.T) {
	if got := Locate(nil, 1000, 0); got != -1 {
		t.Errorf("Locate(nil) = %d, want -1", got)
	}
}

func TestLocate_SingleLine(t *testing.T) {
	lines := []Line{{Time: 2000, Text: "only"}}

	if got := Locate(lines, 1000, 0); got != -1 {
		t.Errorf("Locate before the only line = %d, want -1", got)
	}
	if got := Locate(lines, 2500, 0); got != 0 {
		t.Errorf("Locate after the only line = %d, want 0", got)
	}
}

func TestIsSynced(t *testing.T) {
	if !IsSynced("[00:12.34]line") {
		t.Error("timestamped text should be synced")
	}
	if IsSynced("plain text\nmore text") {
		t.Error("plain text should not be synced")
	}
}

func TestPlainLines(t *testing.T) {
	lines := PlainLines("first\r\n\nsecond\nthird\n")

	if len(lines) != 3 {
		t.Fatalf("len = %d, want 3", len(lines))
	}
	for i, want := range []string{"first", "second", "third"} {
		if lines[i].Text != want {
			t.Errorf("lines[%d].Text = %q, want %q", i, lines[i].Text, want)
		}
		if lines[i].Time != Untimed {
			t.Errorf("lines[%d].Time = %d, want Untimed", i, lines[i].Time)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00.00"},
		{83_450, "01:23.45"},
		{-5, "00:00.00"},
		{600_000, "10:00.00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.ms); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
