package markdown

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text", "sets the position", "sets the position"},
		{"paragraphs", "<p>first</p><p>second</p>", "first\n\nsecond"},
		{"line breaks", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"code", "use <code>go.animate</code> instead", "use `go.animate` instead"},
		{"bold and italic", "<b>must</b> be <i>positive</i>", "**must** be *positive*"},
		{"list items", "<ul><li>first</li><li>second</li></ul>", "- first\n- second"},
		{"entities", "a &lt; b &amp;&amp; b &gt; c", "a < b && b > c"},
		{"unknown tags stripped", `<span class="type">hash</span>`, "hash"},
		{"blank runs collapse", "<p>a</p>\n\n<p>b</p>", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.input); got != tt.expected {
				t.Errorf("Decode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	got := FirstLine("<p></p><p>sets the <code>position</code> of a node</p><p>details follow</p>")
	want := "sets the `position` of a node"
	if got != want {
		t.Errorf("FirstLine = %q, want %q", got, want)
	}
}
