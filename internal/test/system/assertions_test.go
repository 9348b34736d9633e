package system

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Preview returns the display tree printed for node id, without the header
// line, or fails the test when the node was not previewed.
func Preview(t *testing.T, result *HarnessResult, id uint64) string {
	t.Helper()

	header := fmt.Sprintf("node_%d (", id)
	lines := strings.Split(result.Output, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, header) {
			continue
		}
		var tree []string
		for _, l := range lines[i+1:] {
			// Previews are unindented at the root; logs carry a time= prefix.
			if strings.HasPrefix(l, "node_") || strings.HasPrefix(l, "time=") || l == "" {
				break
			}
			tree = append(tree, l)
		}
		return strings.Join(tree, "\n")
	}
	require.Failf(t, "node not previewed", "expected a preview for node_%d in output", id)
	return ""
}

// AssertLogOrder checks that the given messages appear in the output in
// that order.
func AssertLogOrder(t *testing.T, output string, messages ...string) {
	t.Helper()

	pos := 0
	for _, msg := range messages {
		idx := strings.Index(output[pos:], msg)
		require.NotEqual(t, -1, idx, "expected %q after position %d in output", msg, pos)
		pos += idx + len(msg)
	}
}
