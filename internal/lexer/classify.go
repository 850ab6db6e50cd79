package lexer

import "github.com/lumina-lang/luminac/internal/token"

// punctCategories maps merged/raw punctuation spellings to their final
// category. Single characters and multi-character compounds share one
// table since both went through merge() as plain text by this point.
var punctCategories = map[string]token.Category{
	"::": token.NamespaceSeparator,
	"->": token.PipelineFlowSeparator,
	"<=": token.ComparatorOperator,
	">=": token.ComparatorOperator,
	"==": token.ComparatorOperator,
	"!=": token.ComparatorOperator,
	"<":  token.ComparatorOperator,
	">":  token.ComparatorOperator,
	"&&": token.ConditionOperator,
	"||": token.ConditionOperator,
	"+=": token.Assignator,
	"-=": token.Assignator,
	"*=": token.Assignator,
	"/=": token.Assignator,
	"=":  token.Assignator,
	"{":  token.OpenCurlyBracket,
	"}":  token.CloseCurlyBracket,
	"(":  token.OpenParenthesis,
	")":  token.CloseParenthesis,
	"[":  token.OpenBracket,
	"]":  token.CloseBracket,
	".":  token.Accessor,
	";":  token.EndOfSentence,
	",":  token.Comma,
	":":  token.Separator,
	"+":  token.Operator,
	"-":  token.Operator,
	"*":  token.Operator,
	"/":  token.Operator,
}

// classify assigns a final category to every merged token: reserved
// words become their specific keyword category, numeric-shaped words
// stay Number, remaining identifier-shaped words stay Identifier, and
// punctuation (single or merged compound) is looked up in
// punctCategories. Tokens scan or merge already finalized (string
// literals, comments, "#include") pass through unchanged.
//
// A final pass folds a "<...>" run immediately following an Include
// token into one IncludeLiteral token, since that angle-bracket include
// form is otherwise indistinguishable from ordinary comparator tokens.
func classify(merged []token.Token) []token.Token {
	out := make([]token.Token, 0, len(merged))
	for _, t := range merged {
		switch t.Category {
		case token.Identifier:
			if cat, ok := token.ReservedWords[t.Text]; ok {
				t.Category = cat
			}
		case token.Unknown:
			if cat, ok := punctCategories[t.Text]; ok {
				t.Category = cat
			}
		}
		out = append(out, t)
	}
	return mergeIncludeLiterals(out)
}

// mergeIncludeLiterals scans for Include tokens followed by a
// ComparatorOperator "<" and folds everything through the matching ">"
// into a single IncludeLiteral token.
func mergeIncludeLiterals(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.Category == token.Include && i+1 < len(tokens) &&
			tokens[i+1].Category == token.ComparatorOperator && tokens[i+1].Text == "<" {
			j := i + 2
			text := "<"
			closed := false
			for ; j < len(tokens); j++ {
				text += tokens[j].Text
				if tokens[j].Category == token.ComparatorOperator && tokens[j].Text == ">" {
					closed = true
					j++
					break
				}
			}
			out = append(out, t)
			if closed {
				out = append(out, token.Token{Category: token.IncludeLiteral, Text: text, Pos: tokens[i+1].Pos})
				i = j - 1
				continue
			}
			continue
		}
		out = append(out, t)
	}
	return out
}
