package lexer

import "github.com/lumina-lang/luminac/internal/token"

// merge combines adjacent tokens that form one of the recognized
// compounds (see compounds in lexer.go) into a single token, preserving
// the leftmost position. Only tokens still carrying a provisional
// Unknown category (raw punctuation) participate, except for
// "#include" which pairs an Unknown "#" with the Identifier "include".
// Tokens already assigned a final category by scan (string literals,
// comments, identifiers that aren't "include") pass through untouched.
func merge(raw []token.Token) []token.Token {
	out := make([]token.Token, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if i+1 < len(raw) && adjacent(raw[i], raw[i+1]) {
			combined := raw[i].Text + raw[i+1].Text
			if isCompound(combined) && canMerge(raw[i], raw[i+1], combined) {
				cat := token.Unknown
				if combined == "#include" {
					cat = token.Include
				}
				out = append(out, token.Token{Category: cat, Text: combined, Pos: raw[i].Pos})
				i++
				continue
			}
		}
		out = append(out, raw[i])
	}
	return out
}

func adjacent(a, b token.Token) bool {
	return a.Pos.Line == b.Pos.Line && a.Pos.Column+len([]rune(a.Text)) == b.Pos.Column
}

func canMerge(a, b token.Token, combined string) bool {
	if combined == "#include" {
		return a.Category == token.Unknown && b.Category == token.Identifier && b.Text == "include"
	}
	return a.Category == token.Unknown && b.Category == token.Unknown
}

func isCompound(s string) bool {
	for _, c := range compounds {
		if c == s {
			return true
		}
	}
	return false
}
