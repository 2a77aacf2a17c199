package reports

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// Every cached roster key must sit under the prefix InvalidateRoster deletes
// for its branch+semester, and under the global prefix InvalidateAllRosters
// deletes, regardless of the date range.
func TestRosterCacheKeyPrefixes(t *testing.T) {
	from := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)

	keys := []string{
		rosterCacheKey("CSE", 3, nil, nil),
		rosterCacheKey("CSE", 3, &from, &to),
	}
	branchPrefix := fmt.Sprintf("%s%s:%d:", rosterPrefix, "CSE", 3)

	for _, key := range keys {
		if !strings.HasPrefix(key, rosterPrefix) {
			t.Errorf("key %q escapes the roster namespace", key)
		}
		if !strings.HasPrefix(key, branchPrefix) {
			t.Errorf("key %q escapes the branch+semester prefix %q", key, branchPrefix)
		}
	}

	if keys[0] == keys[1] {
		t.Error("ranged and unranged keys collide")
	}
	if other := rosterCacheKey("ECE", 3, nil, nil); strings.HasPrefix(other, branchPrefix) {
		t.Errorf("key %q for another branch shares the prefix %q", other, branchPrefix)
	}
}
