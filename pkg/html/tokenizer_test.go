package html

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []Token
	}{
		{"plain text", "abc", []Token{Text("abc")}},
		{"bold", "<b>x</b>", []Token{Tag("b"), Text("x"), Tag("/b")}},
		{"empty", "", nil},
		{"attributes kept verbatim", `<a href="/x">link</a>`, []Token{Tag(`a href="/x"`), Text("link"), Tag("/a")}},
		{"whitespace preserved", "<i>Hi</i> <b>there</b>", []Token{
			Tag("i"), Text("Hi"), Tag("/i"), Text(" "), Tag("b"), Text("there"), Tag("/b"),
		}},
		{"trailing text flushed", "<p>one</p>two", []Token{Tag("p"), Text("one"), Tag("/p"), Text("two")}},
		{"unterminated tag dropped", "one<b", []Token{Text("one")}},
		{"empty tag", "<>", []Token{Tag("")}},
		{"stray close bracket", "a>b", []Token{Tag("a"), Text("b")}},
		{"entities not decoded", "&lt;&amp;", []Token{Text("&lt;&amp;")}},
		{"comment is just a tag", "<!-- hi -->x", []Token{Tag("!-- hi --"), Text("x")}},
		{"self closing not special", "<br/>", []Token{Tag("br/")}},
		{"multibyte text", "<b>héllo wörld</b>", []Token{Tag("b"), Text("héllo wörld"), Tag("/b")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Lex(tt.source)); diff != "" {
				t.Errorf("Lex(%q) mismatch (-want +got):\n%s", tt.source, diff)
			}
		})
	}
}

func TestTokenizer_NextToken(t *testing.T) {
	tokenizer := NewTokenizer("<b>Hello</b>")
	token1, ok := tokenizer.NextToken()
	if !ok || token1.Type != TokenTag || token1.Tag != "b" {
		t.Errorf("expected tag 'b', got %v", token1)
	}
	token2, ok := tokenizer.NextToken()
	if !ok || token2.Type != TokenText || token2.Text != "Hello" {
		t.Errorf("expected text 'Hello', got %v", token2)
	}
	token3, ok := tokenizer.NextToken()
	if !ok || token3.Type != TokenTag || token3.Tag != "/b" {
		t.Errorf("expected tag '/b', got %v", token3)
	}
	if _, ok := tokenizer.NextToken(); ok {
		t.Error("expected end of input")
	}
	if _, ok := tokenizer.NextToken(); ok {
		t.Error("expected end of input to be sticky")
	}
}

func TestToken_String(t *testing.T) {
	if got := Tag("/p").String(); got != "Tag(</p>)" {
		t.Errorf("expected 'Tag(</p>)', got '%s'", got)
	}
	if got := Text("a \"b\"\n").String(); got != `Text("a \"b\"\n")` {
		t.Errorf(`expected 'Text("a \"b\"\n")', got '%s'`, got)
	}
}
