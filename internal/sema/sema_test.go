package sema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/vfs"
	"github.com/stretchr/testify/require"
)

func analyzeSource(t *testing.T, src string) (*Program, *diag.Collector) {
	t.Helper()
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.shader")
	require.NoError(t, os.WriteFile(entry, []byte(src), 0o644))

	var d diag.Collector
	resolver := vfs.NewResolver(nil)
	prog, err := Analyze(entry, resolver, &d)
	require.NoError(t, err)
	return prog, &d
}

func TestAnalyze_ScalarConversionsAcceptedInBothDirections(t *testing.T) {
	_, d := analyzeSource(t, `
void main() {
	float f = 2;
	int i = f;
}
`)
	require.True(t, d.Empty(), "%v", d.All())
}

func TestAnalyze_VectorConstructorAndMemberAccess(t *testing.T) {
	_, d := analyzeSource(t, `
float get() {
	Vector3 v = Vector3(1.0, 2.0, 3.0);
	return v.x;
}
`)
	require.True(t, d.Empty(), "%v", d.All())
}

func TestAnalyze_VectorConstructorMixedPieces(t *testing.T) {
	_, d := analyzeSource(t, `
Vector3 build(float a, Vector2 b) {
	Vector3 v = Vector3(a, b);
	return v;
}
`)
	require.True(t, d.Empty(), "%v", d.All())
}

func TestAnalyze_ForbiddenPipelinePair(t *testing.T) {
	_, d := analyzeSource(t, `Input -> FragmentPass : Vector3 pos;`)
	require.False(t, d.Empty())
	require.Equal(t, diag.CodeForbiddenPipelinePair, d.All()[0].Code)
}

func TestAnalyze_AllowedPipelinePairs(t *testing.T) {
	_, d := analyzeSource(t, `
Input -> VertexPass : Vector3 pos;
VertexPass -> FragmentPass : Vector3 color;
`)
	require.True(t, d.Empty(), "%v", d.All())
}

func TestAnalyze_DuplicateOverloadDifferentReturnType(t *testing.T) {
	_, d := analyzeSource(t, `
float foo(int a) { return 1.0; }
int foo(int a) { return 1; }
`)
	require.False(t, d.Empty())
	require.Equal(t, diag.CodeDuplicateDeclaration, d.All()[0].Code)
}

func TestAnalyze_OverloadsDistinguishedByParameterTypes(t *testing.T) {
	_, d := analyzeSource(t, `
float foo(int a) { return 1.0; }
float foo(float a) { return a; }
`)
	require.True(t, d.Empty(), "%v", d.All())
}

func TestAnalyze_BareReturnInNonVoidFunction(t *testing.T) {
	_, d := analyzeSource(t, `
int foo() { return; }
`)
	require.False(t, d.Empty())
	require.Equal(t, diag.CodeWrongReturnType, d.All()[0].Code)
}

func TestAnalyze_BareReturnAllowedInVoidFunction(t *testing.T) {
	_, d := analyzeSource(t, `
void foo() { return; }
`)
	require.True(t, d.Empty(), "%v", d.All())
}

func TestAnalyze_ConditionMustBeBool(t *testing.T) {
	_, d := analyzeSource(t, `
void foo() {
	if (1) {
		return;
	}
}
`)
	require.False(t, d.Empty())
	require.Equal(t, diag.CodeIncompatibleConversion, d.All()[0].Code)
}

func TestAnalyze_ConditionOperatorsCombineToBool(t *testing.T) {
	_, d := analyzeSource(t, `
void foo() {
	float a = 1.0;
	float b = 2.0;
	if (a > 0.0 && b > 0.0) {
		return;
	}
}
`)
	require.True(t, d.Empty(), "%v", d.All())
}

func TestAnalyze_ConditionOperatorRejectsNonBoolOperand(t *testing.T) {
	_, d := analyzeSource(t, `
void foo() {
	float a = 1.0;
	if (a && a) {
		return;
	}
}
`)
	require.False(t, d.Empty())
	require.Equal(t, diag.CodeIncompatibleConversion, d.All()[0].Code)
}

func TestAnalyze_DuplicateStructMemberName(t *testing.T) {
	_, d := analyzeSource(t, `
struct Foo {
	float x;
	float x;
};
`)
	require.False(t, d.Empty())
	require.Equal(t, diag.CodeDuplicateDeclaration, d.All()[0].Code)
}

func TestAnalyze_AttributeBlockMembersVisibleAsGlobals(t *testing.T) {
	_, d := analyzeSource(t, `
AttributeBlock Attrs {
	Vector3 normal;
};
VertexPass() {
	Vector3 n = normal;
	discard;
}
`)
	require.True(t, d.Empty(), "%v", d.All())
}

func TestAnalyze_PipelineBodyRejectsInputStage(t *testing.T) {
	_, d := analyzeSource(t, `Input() { discard; }`)
	require.False(t, d.Empty())
}

func TestAnalyze_RepeatedPipelineBodyStage(t *testing.T) {
	_, d := analyzeSource(t, `
VertexPass() { discard; }
VertexPass() { discard; }
`)
	require.False(t, d.Empty())
	require.Equal(t, diag.CodeRepeatedPipelineBody, d.All()[0].Code)
}

func TestAnalyze_IncludeIsExpandedAndSpliced(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "common.shader"), []byte(`
struct Params {
	float intensity;
};
`), 0o644))
	entry := filepath.Join(dir, "main.shader")
	require.NoError(t, os.WriteFile(entry, []byte(`
#include "common.shader"
float scale(Params p) { return p.intensity; }
`), 0o644))

	var d diag.Collector
	resolver := vfs.NewResolver(nil)
	prog, err := Analyze(entry, resolver, &d)
	require.NoError(t, err)
	require.True(t, d.Empty(), "%v", d.All())
	require.Len(t, prog.Files, 2)
}

func TestAnalyze_IncludeExpandedAtMostOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "common.shader"), []byte(`
struct Params {
	float intensity;
};
`), 0o644))
	entry := filepath.Join(dir, "main.shader")
	require.NoError(t, os.WriteFile(entry, []byte(`
#include "common.shader"
#include "common.shader"
float scale(Params p) { return p.intensity; }
`), 0o644))

	var d diag.Collector
	resolver := vfs.NewResolver(nil)
	_, err := Analyze(entry, resolver, &d)
	require.NoError(t, err)
	require.True(t, d.Empty(), "%v", d.All())
}

func TestAnalyze_MissingIncludeDiagnosed(t *testing.T) {
	_, d := analyzeSource(t, `#include "does_not_exist.shader"`)
	require.False(t, d.Empty())
	require.Equal(t, diag.CodeIncludeNotFound, d.All()[0].Code)
}
