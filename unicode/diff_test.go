package unicode

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// requireEqualDiff fails with a readable diff instead of a raw %q dump when
// want/got differ, the way google-kati's run_test.go reports mismatches.
func requireEqualDiff(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	t.Errorf("mismatch (want -> got):\n%s", dmp.DiffPrettyText(diffs))
}
