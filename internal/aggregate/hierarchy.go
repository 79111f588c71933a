package aggregate

import "github.com/ougirez/carbon4c/internal/domain"

// Hierarchy resolves the parent of an entity one level up.
type Hierarchy interface {
	Parent(entityID string) (string, bool)
}

// ParentMap maps child entity ids to parent entity ids.
type ParentMap map[string]string

func (m ParentMap) Parent(entityID string) (string, bool) {
	p, ok := m[entityID]
	return p, ok
}

type nation struct{}

func (nation) Parent(string) (string, bool) { return domain.NationalEntityID, true }

// National places every company under the national entity.
var National Hierarchy = nation{}
