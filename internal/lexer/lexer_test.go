package lexer

import "testing"

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == END {
			break
		}
	}
	return toks
}

func TestNextToken_Symbols(t *testing.T) {
	input := `=+(){}[],;:?.~`
	want := []TokenType{ASSIGN, PLUS, LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, SEMI, COLON, QUESTION, DOT, TILDE, END}

	toks := tokenize(t, input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNextToken_MultiCharSymbolsLongestFirst(t *testing.T) {
	cases := []struct {
		input string
		typ   TokenType
	}{
		{"++", INC}, {"--", DEC}, {"+=", PLUSEQ}, {"<<=", SHLEQ}, {">>=", SHREQ},
		{"<<", SHL}, {">>", SHR}, {"<=", LE}, {">=", GE}, {"==", EQ}, {"!=", NEQ},
		{"&&", LOGAND}, {"||", LOGOR},
	}
	for _, c := range cases {
		toks := tokenize(t, c.input)
		if toks[0].Type != c.typ {
			t.Errorf("%q: got %s, want %s", c.input, toks[0].Type, c.typ)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := "null false true if else while do for break continue switch case default function return local this global class throw try catch finally"
	toks := tokenize(t, input)
	want := []TokenType{NULL, FALSE, TRUE, IF, ELSE, WHILE, DO, FOR, BREAK, CONTINUE, SWITCH, CASE, DEFAULT, FUNCTION, RETURN, LOCAL, THIS, GLOBAL, CLASS, THROW, TRY, CATCH, FINALLY, END}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNextToken_Identifier(t *testing.T) {
	toks := tokenize(t, "foo _bar $baz qux123")
	for i, name := range []string{"foo", "_bar", "$baz", "qux123"} {
		if toks[i].Type != IDENT || toks[i].Literal != name {
			t.Errorf("token %d: got %v, want IDENT(%s)", i, toks[i], name)
		}
	}
}

func TestNextToken_Numbers(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		isInt bool
	}{
		{"123", 123, true},
		{"0", 0, true},
		{"3.14", 3.14, false},
		{"1e10", 1e10, false},
		{"1.5e-3", 1.5e-3, false},
		{"0xFF", 255, true},
		{"0X1a", 26, true},
	}
	for _, c := range cases {
		toks := tokenize(t, c.input)
		if toks[0].Type != NUMBER {
			t.Fatalf("%q: got %s, want NUMBER", c.input, toks[0].Type)
		}
		if toks[0].Number != c.want {
			t.Errorf("%q: got %v, want %v", c.input, toks[0].Number, c.want)
		}
		if toks[0].IsInt != c.isInt {
			t.Errorf("%q: IsInt got %v, want %v", c.input, toks[0].IsInt, c.isInt)
		}
	}
}

func TestNextToken_BareDotIsNotANumber(t *testing.T) {
	toks := tokenize(t, ".")
	if toks[0].Type != DOT {
		t.Fatalf("got %s, want DOT", toks[0].Type)
	}
}

func TestNextToken_NumberFollowedByIdentCharIsError(t *testing.T) {
	l := New("123abc")
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected lex error for number followed by identifier char")
	}
}

func TestNextToken_Strings(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"tab\ttab"`, "tab\ttab"},
		{`"\x41"`, "A"},
		{`"A"`, "A"},
		{`"\U00000041"`, "A"},
		{`"quote: \""`, `quote: "`},
	}
	for _, c := range cases {
		toks := tokenize(t, c.input)
		if toks[0].Type != STRING {
			t.Fatalf("%q: got %s, want STRING", c.input, toks[0].Type)
		}
		if toks[0].Literal != c.want {
			t.Errorf("%q: got %q, want %q", c.input, toks[0].Literal, c.want)
		}
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	l := New(`"abc`)
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected lex error for unterminated string")
	}
}

func TestNextToken_BadEscape(t *testing.T) {
	l := New(`"\q"`)
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected lex error for bad escape")
	}
}

func TestNextToken_UnterminatedBlockComment(t *testing.T) {
	l := New("/* never closes")
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected lex error for unterminated block comment")
	}
}

func TestNextToken_SkipsLineAndBlockComments(t *testing.T) {
	input := "// a comment\nx /* inline */ = 1;"
	toks := tokenize(t, input)
	want := []TokenType{IDENT, ASSIGN, NUMBER, SEMI, END}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNextToken_TracksLineAndColumn(t *testing.T) {
	input := "a\nb"
	toks := tokenize(t, input)
	if toks[0].Pos.Line != 1 {
		t.Errorf("first token line = %d, want 1", toks[0].Pos.Line)
	}
	if toks[1].Pos.Line != 2 {
		t.Errorf("second token line = %d, want 2", toks[1].Pos.Line)
	}
}

func TestNextToken_EndsWithEnd(t *testing.T) {
	toks := tokenize(t, "x")
	last := toks[len(toks)-1]
	if last.Type != END {
		t.Fatalf("last token = %s, want END", last.Type)
	}
}

func TestNextToken_StripsLeadingBOM(t *testing.T) {
	input := "\xEF\xBB\xBFx"
	toks := tokenize(t, input)
	if toks[0].Type != IDENT || toks[0].Literal != "x" {
		t.Fatalf("got %v, want IDENT(x)", toks[0])
	}
}
