package lexer

import (
	"testing"

	"github.com/lumina-lang/luminac/internal/token"
	"github.com/stretchr/testify/require"
)

func categories(toks []token.Token) []token.Category {
	cats := make([]token.Category, len(toks))
	for i, t := range toks {
		cats[i] = t.Category
	}
	return cats
}

func TestTokenizeIdentifiersAndKeywords(t *testing.T) {
	toks := TokenizeSource("t.shader", "struct Foo { float x; }")
	require.Equal(t, []token.Category{
		token.StructureBlock,
		token.Identifier,
		token.OpenCurlyBracket,
		token.Identifier, // "float" is not reserved, it's a built-in type name
		token.Identifier,
		token.EndOfSentence,
		token.CloseCurlyBracket,
	}, categories(toks))
}

func TestTokenizeNumbers(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		toks := TokenizeSource("t.shader", "42")
		require.Len(t, toks, 1)
		require.Equal(t, token.Number, toks[0].Category)
		require.Equal(t, "42", toks[0].Text)
	})

	t.Run("decimal", func(t *testing.T) {
		toks := TokenizeSource("t.shader", "3.14")
		require.Len(t, toks, 1)
		require.Equal(t, "3.14", toks[0].Text)
	})

	t.Run("trailing dot is not consumed without a following digit", func(t *testing.T) {
		toks := TokenizeSource("t.shader", "3.x")
		require.Len(t, toks, 3)
		require.Equal(t, "3", toks[0].Text)
		require.Equal(t, token.Accessor, toks[1].Category)
		require.Equal(t, "x", toks[2].Text)
	})
}

func TestTokenizeCompounds(t *testing.T) {
	toks := TokenizeSource("t.shader", "A::B -> C; x <= y && z >= w")
	var texts []string
	for _, tok := range toks {
		texts = append(texts, tok.Text)
	}
	require.Contains(t, texts, "::")
	require.Contains(t, texts, "->")
	require.Contains(t, texts, "<=")
	require.Contains(t, texts, "&&")
	require.Contains(t, texts, ">=")
}

func TestTokenizeCompoundAssignment(t *testing.T) {
	toks := TokenizeSource("t.shader", "x += 1;")
	require.Equal(t, token.Assignator, toks[1].Category)
	require.Equal(t, "+=", toks[1].Text)
}

func TestTokenizeComments(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		toks := TokenizeSource("t.shader", "int x; // a trailing remark\nint y;")
		require.Equal(t, token.SingleLineComment, toks[3].Category)
		require.Contains(t, toks[3].Text, "a trailing remark")
	})

	t.Run("multi line", func(t *testing.T) {
		toks := TokenizeSource("t.shader", "/* spans\nlines */ int x;")
		require.Equal(t, token.MultiLineCommentStart, toks[0].Category)
		require.Equal(t, token.Comment, toks[1].Category)
		require.Equal(t, token.MultiLineCommentStop, toks[2].Category)
	})

	t.Run("empty multi line comment has no body token", func(t *testing.T) {
		toks := TokenizeSource("t.shader", "/**/ int x;")
		require.Equal(t, token.MultiLineCommentStart, toks[0].Category)
		require.Equal(t, token.MultiLineCommentStop, toks[1].Category)
	})
}

func TestTokenizeInclude(t *testing.T) {
	t.Run("quoted path", func(t *testing.T) {
		toks := TokenizeSource("t.shader", `#include "common/types.shader"`)
		require.Equal(t, token.Include, toks[0].Category)
		require.Equal(t, token.StringLiteral, toks[1].Category)
		require.Equal(t, `"common/types.shader"`, toks[1].Text)
	})

	t.Run("angle bracket name", func(t *testing.T) {
		toks := TokenizeSource("t.shader", "#include <common/types>")
		require.Equal(t, token.Include, toks[0].Category)
		require.Equal(t, token.IncludeLiteral, toks[1].Category)
		require.Equal(t, "<common/types>", toks[1].Text)
	})
}

func TestTokenizeUnknownCharacterDoesNotAbort(t *testing.T) {
	toks := TokenizeSource("t.shader", "int x = $;")
	var cats []token.Category
	for _, tok := range toks {
		cats = append(cats, tok.Category)
	}
	require.Contains(t, cats, token.Unknown)
}

func TestTokenizeTabExpansion(t *testing.T) {
	// A tab before "x" should expand to four columns, so "x" starts at
	// column 5, matching visible terminal output.
	toks := TokenizeSource("t.shader", "\tx")
	require.Len(t, toks, 1)
	require.Equal(t, 5, toks[0].Pos.Column)
}

func TestTokenizePipelineKeywordsShareCategory(t *testing.T) {
	toks := TokenizeSource("t.shader", "Input -> VertexPass : float3 pos;")
	require.Equal(t, token.PipelineFlow, toks[0].Category)
	require.Equal(t, "Input", toks[0].Text)
	require.Equal(t, token.PipelineFlowSeparator, toks[1].Category)
	require.Equal(t, token.PipelineFlow, toks[2].Category)
	require.Equal(t, "VertexPass", toks[2].Text)
}

// TestTokenizeRoundTrip exercises a round-trip invariant: concatenating
// each token's raw text with single spaces re-tokenizes to the same
// sequence of categories and text (whitespace-insensitive).
func TestTokenizeRoundTrip(t *testing.T) {
	src := "struct Foo { float3 pos; } if (x == y) { return; }"
	first := TokenizeSource("t.shader", src)

	rebuilt := ""
	for i, tok := range first {
		if i > 0 {
			rebuilt += " "
		}
		rebuilt += tok.Text
	}

	second := TokenizeSource("t.shader", rebuilt)
	require.Equal(t, categories(first), categories(second))

	for i := range first {
		require.Equal(t, first[i].Text, second[i].Text)
	}
}
