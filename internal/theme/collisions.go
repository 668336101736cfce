package theme

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

// CheckCollisions reports renamed identifiers of the default theme that more
// than one declaration produces. Globals keep their names and are shared, so
// an identifier declared only by globals files is not a collision. It returns
// a *errors.CollisionError or nil.
func (p *Project) CheckCollisions() error {
	// owner -> declared in a globals file
	owners := make(map[string]map[string]bool)
	for _, vars := range p.DefaultTheme().SortedVariables() {
		for _, rename := range vars.Renames {
			set, ok := owners[rename.Renamed]
			if !ok {
				set = make(map[string]bool)
				owners[rename.Renamed] = set
			}
			set[fmt.Sprintf("%s:@%s", vars.Path, rename.Original)] = vars.Global
		}
	}

	var collisions []apperrors.Collision
	for identifier, set := range owners {
		if len(set) < 2 || onlyGlobals(set) {
			continue
		}
		list := make([]string, 0, len(set))
		for owner := range set {
			list = append(list, owner)
		}
		sort.Strings(list)
		collisions = append(collisions, apperrors.Collision{Identifier: identifier, Owners: list})
	}
	if len(collisions) == 0 {
		return nil
	}

	sort.Slice(collisions, func(i, j int) bool {
		return strings.Compare(collisions[i].Identifier, collisions[j].Identifier) < 0
	})
	return apperrors.NewCollisionError(collisions)
}

func onlyGlobals(set map[string]bool) bool {
	for _, global := range set {
		if !global {
			return false
		}
	}
	return true
}
