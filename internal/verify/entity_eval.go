package verify

import (
	"fmt"

	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

// evalEntity implements the two-stage lookup of spec.md §4.8: consult
// the provided entity-index map first, then fall back to scanning
// manifests for an identity-component change that names the role.
func evalEntity(spec intent.IntentSpec, manifests []manifest.TickManifest, index manifest.EntityIndex) IntentResult {
	if entry, ok := index[spec.EntityRole]; ok {
		if spec.EntityType != "" && entry.EntityType != spec.EntityType {
			return fail(spec.Name, string(intent.KindEntity), "type does not match")
		}
		return pass(spec.Name, string(intent.KindEntity))
	}

	for _, m := range manifests {
		for _, c := range m.ComponentChanges {
			role, ok := roleOf(c.NewValue)
			if ok && role == spec.EntityRole {
				return pass(spec.Name, string(intent.KindEntity), c)
			}
		}
	}

	return fail(spec.Name, string(intent.KindEntity),
		fmt.Sprintf("no entity found with role '%s' (add a spawn command)", spec.EntityRole))
}

func roleOf(value any) (string, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return "", false
	}
	role, ok := m["role"].(string)
	return role, ok
}
