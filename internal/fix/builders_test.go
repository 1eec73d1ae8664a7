package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocl/internal/diag"
	"ocl/internal/source"
)

func TestInsertTextDefaults(t *testing.T) {
	at := source.Span{Start: 9, End: 9}
	f := InsertText("insert ';'", at, ";", "")

	require.Len(t, f.Edits, 1)
	assert.Equal(t, diag.FixKindQuickFix, f.Kind)
	assert.Equal(t, diag.FixApplicabilityAlwaysSafe, f.Applicability)
	assert.Equal(t, ";", f.Edits[0].NewText)
	assert.Empty(t, f.ID)
}

func TestOptionsApplyInOrder(t *testing.T) {
	at := source.Span{Start: 0, End: 3}
	var nilOpt Option
	f := ReplaceSpan("use float", at, "float", "int",
		nilOpt,
		WithID("custom-id"),
		Preferred(),
		WithKind(diag.FixKindRefactor),
		WithApplicability(diag.FixApplicabilityManualReview),
	)

	assert.Equal(t, "custom-id", f.ID)
	assert.True(t, f.IsPreferred)
	assert.Equal(t, diag.FixKindRefactor, f.Kind)
	assert.Equal(t, diag.FixApplicabilityManualReview, f.Applicability)
	assert.Equal(t, "int", f.Edits[0].OldText)
}

func TestDeleteSpan(t *testing.T) {
	f := DeleteSpan("remove ';'", source.Span{Start: 4, End: 5}, ";")
	require.Len(t, f.Edits, 1)
	assert.Empty(t, f.Edits[0].NewText)
	assert.Equal(t, ";", f.Edits[0].OldText)
}

func TestMakeFixIDIsStable(t *testing.T) {
	at := source.Span{File: 2, Start: 17, End: 17}
	assert.Equal(t, "SYN2012-2-17", MakeFixID(diag.SynExpectSemicolon, at))
	assert.Equal(t, MakeFixID(diag.SynExpectSemicolon, at), MakeFixID(diag.SynExpectSemicolon, at))
}
