package compare

import (
	"strconv"
	"strings"

	"github.com/lox/nomai-verify/internal/manifest"
)

// MatchesEntity is the entity-name matching heuristic: the manifest
// carries entity ids but intents carry human names. This is the
// spec's main locus of behavioral subtlety (spec.md §4.3, §9) — every
// one of its four branches is load-bearing and must not be
// "simplified" away.
//
//  1. If name parses as an integer, require an exact entity-id match.
//  2. Else case-insensitively substring-match name against the
//     change's reason detail; a hit returns true.
//  3. If the detail contains a colon (the "a:b" role-pair convention)
//     and step 2 did not hit, return false — clear negative evidence.
//  4. Otherwise return true: permissive, to avoid false negatives when
//     the simulator omits identifying detail.
func MatchesEntity(change manifest.ComponentChange, name string) bool {
	if id, err := strconv.ParseUint(name, 10, 64); err == nil {
		return change.EntityId == manifest.EntityId(id)
	}

	detail := change.ReasonDetail()
	if ContainsFold(detail, name) {
		return true
	}
	if strings.Contains(detail, ":") {
		return false
	}
	return true
}

// ContainsFold reports whether needle appears in haystack, ignoring
// case. Used directly by trigger/expected rules (EventOccurred,
// EventEmitted, EntityDespawned) that specify case-insensitive
// substring matching without the full MatchesEntity heuristic; the
// Collision trigger performs the same lower-cased substring test
// inline.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
