package html

import "strings"

type TokenType int

const (
	TokenText TokenType = iota
	TokenTag
)

// Token is either a run of text or the raw content of one <...> tag.
// Tag content is not validated: "b", "/p" and `a href="x"` are all just tags.
type Token struct {
	Type TokenType
	Text string
	Tag  string
}

// Text returns a text token.
func Text(s string) Token { return Token{Type: TokenText, Text: s} }

// Tag returns a tag token holding raw tag content.
func Tag(s string) Token { return Token{Type: TokenTag, Tag: s} }

func (t Token) String() string {
	if t.Type == TokenTag {
		return "Tag(<" + t.Tag + ">)"
	}
	return "Text(" + quote(t.Text) + ")"
}

func quote(s string) string {
	r := strings.NewReplacer(`"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}

type Tokenizer struct {
	input   string
	pos     int
	inAngle bool
	buf     strings.Builder
}

func NewTokenizer(source string) *Tokenizer {
	return &Tokenizer{input: source}
}

// NextToken scans forward to the next complete token. The second result is
// false once the input is exhausted. Text left over at the end of the input
// is returned as a final token, but only outside a tag: an unterminated
// "<..." is dropped.
func (t *Tokenizer) NextToken() (Token, bool) {
	for t.pos < len(t.input) {
		c := t.input[t.pos]
		t.pos++
		switch c {
		case '<':
			t.inAngle = true
			if t.buf.Len() > 0 {
				return Text(t.take()), true
			}
		case '>':
			t.inAngle = false
			return Tag(t.take()), true
		default:
			t.buf.WriteByte(c)
		}
	}
	if !t.inAngle && t.buf.Len() > 0 {
		return Text(t.take()), true
	}
	return Token{}, false
}

func (t *Tokenizer) take() string {
	s := t.buf.String()
	t.buf.Reset()
	return s
}

// Lex splits source into text and tag tokens in document order.
func Lex(source string) []Token {
	var out []Token
	tokenizer := NewTokenizer(source)
	for {
		token, ok := tokenizer.NextToken()
		if !ok {
			return out
		}
		out = append(out, token)
	}
}
