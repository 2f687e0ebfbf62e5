package reconcile_test

import (
	"testing"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declared(kind brewpkg.Kind, group string, names ...string) []brewpkg.Entry {
	var out []brewpkg.Entry
	for _, name := range names {
		out = append(out, brewpkg.Entry{Name: name, Group: group, Kind: kind})
	}
	return out
}

func installed(kind brewpkg.Kind, names ...string) []brewpkg.Entry {
	var out []brewpkg.Entry
	for _, name := range names {
		out = append(out, brewpkg.Entry{Name: name, Kind: kind, Status: brewpkg.StatusInstalled})
	}
	return out
}

func TestCompareIdenticalSetsAreInSync(t *testing.T) {
	decl := declared(brewpkg.KindFormula, "common", "git", "jq")
	inst := installed(brewpkg.KindFormula, "jq", "git")

	diff := reconcile.Compare(decl, inst)
	assert.True(t, diff.InSync())
	assert.Empty(t, diff.Missing)
	assert.Empty(t, diff.Extra)
}

func TestCompareMissingAndExtra(t *testing.T) {
	decl := declared(brewpkg.KindFormula, "common", "git", "ripgrep")
	inst := installed(brewpkg.KindFormula, "git", "wget")

	diff := reconcile.Compare(decl, inst)
	require.Len(t, diff.Missing, 1)
	assert.Equal(t, "ripgrep", diff.Missing[0].Name)
	assert.Equal(t, "common", diff.Missing[0].Group)
	assert.Equal(t, brewpkg.StatusMissing, diff.Missing[0].Status)

	require.Len(t, diff.Extra, 1)
	assert.Equal(t, "wget", diff.Extra[0].Name)
	assert.Empty(t, diff.Extra[0].Group)
	assert.Equal(t, brewpkg.StatusInstalled, diff.Extra[0].Status)
}

func TestCompareKindParticipatesInIdentity(t *testing.T) {
	decl := declared(brewpkg.KindCask, "apps", "firefox")
	inst := installed(brewpkg.KindFormula, "firefox")

	diff := reconcile.Compare(decl, inst)
	require.Len(t, diff.Missing, 1)
	assert.Equal(t, brewpkg.KindCask, diff.Missing[0].Kind)
	require.Len(t, diff.Extra, 1)
	assert.Equal(t, brewpkg.KindFormula, diff.Extra[0].Kind)
}

func TestCompareMASMatchesOnBaseName(t *testing.T) {
	decl := declared(brewpkg.KindMAS, "apps", "Xcode::497799835")
	inst := installed(brewpkg.KindMAS, "Xcode")

	diff := reconcile.Compare(decl, inst)
	assert.True(t, diff.InSync(), "declared Name::id must match installed bare name")
}

func TestCompareMASMissing(t *testing.T) {
	decl := declared(brewpkg.KindMAS, "apps", "Xcode::497799835", "Keynote::409183694")
	inst := installed(brewpkg.KindMAS, "Keynote")

	diff := reconcile.Compare(decl, inst)
	require.Len(t, diff.Missing, 1)
	assert.Equal(t, "Xcode::497799835", diff.Missing[0].Name,
		"missing entries keep the declared form with the id")
	assert.Empty(t, diff.Extra)
}

func TestCompareMASExtraUsesBareName(t *testing.T) {
	inst := installed(brewpkg.KindMAS, "Pages")

	diff := reconcile.Compare(nil, inst)
	require.Len(t, diff.Extra, 1)
	assert.Equal(t, "Pages", diff.Extra[0].Name)
}

func TestCompareEmptyDeclared(t *testing.T) {
	inst := installed(brewpkg.KindFormula, "git")
	diff := reconcile.Compare(nil, inst)
	assert.Empty(t, diff.Missing)
	assert.Len(t, diff.Extra, 1)
}

func TestCompareEmptyInstalled(t *testing.T) {
	decl := declared(brewpkg.KindFormula, "common", "git")
	diff := reconcile.Compare(decl, nil)
	assert.Len(t, diff.Missing, 1)
	assert.Empty(t, diff.Extra)
}

func TestCompareSortsByKindThenName(t *testing.T) {
	decl := append(
		declared(brewpkg.KindCask, "apps", "zoom", "firefox"),
		declared(brewpkg.KindTap, "common", "homebrew/cask")...,
	)

	diff := reconcile.Compare(decl, nil)
	require.Len(t, diff.Missing, 3)
	assert.Equal(t, "homebrew/cask", diff.Missing[0].Name, "taps come first")
	assert.Equal(t, "firefox", diff.Missing[1].Name)
	assert.Equal(t, "zoom", diff.Missing[2].Name)
}

func TestAnnotateResolvesStatus(t *testing.T) {
	decl := declared(brewpkg.KindFormula, "common", "git", "ripgrep")
	inst := installed(brewpkg.KindFormula, "git")

	annotated := reconcile.Annotate(decl, inst)
	require.Len(t, annotated, 2)
	assert.Equal(t, "git", annotated[0].Name)
	assert.Equal(t, brewpkg.StatusInstalled, annotated[0].Status)
	assert.Equal(t, "ripgrep", annotated[1].Name)
	assert.Equal(t, brewpkg.StatusMissing, annotated[1].Status)
}

func TestAnnotateMASUsesBaseNameMatching(t *testing.T) {
	decl := declared(brewpkg.KindMAS, "apps", "Xcode::497799835")
	inst := installed(brewpkg.KindMAS, "Xcode")

	annotated := reconcile.Annotate(decl, inst)
	require.Len(t, annotated, 1)
	assert.Equal(t, brewpkg.StatusInstalled, annotated[0].Status)
}
