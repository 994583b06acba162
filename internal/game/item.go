package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/google/uuid"

	"github.com/jademud/jademud/internal/storage"
)

// ItemSpec is an item blueprint loaded from asset files. Instances are
// materialized on demand (purchases, npc drops) and destroyed on
// consumption or recycle.
type ItemSpec struct {
	Name  string `json:"name"`
	Short string `json:"short"`

	// Type is the recycle category ("food", "weapon", ...).
	Type string `json:"type"`

	// Value is the item's base worth in silver.
	Value int `json:"value"`
}

// Validate satisfies storage.ValidatingSpec.
func (i *ItemSpec) Validate() error {
	el := errors.NewErrorList()
	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.Type == "" {
		el.Add(fmt.Errorf("item type is required"))
	}
	if i.Value < 0 {
		el.Add(fmt.Errorf("item value must be non-negative"))
	}
	return el.Err()
}

// SpawnFunc materializes a fresh, unregistered item entity from a blueprint
// id. The commerce engine receives one as an explicit dependency.
type SpawnFunc func(blueprintId string) (*Entity, error)

// NewSpawner builds the blueprint-instantiation factory over an item store.
func NewSpawner(items storage.Storer[*ItemSpec]) SpawnFunc {
	return func(blueprintId string) (*Entity, error) {
		spec := items.Get(blueprintId)
		if spec == nil {
			return nil, fmt.Errorf("item blueprint %q not found", blueprintId)
		}

		e := NewEntity(ItemId(blueprintId, uuid.NewString()), spec.Name)
		e.SetShort(spec.Short)
		if err := e.Set(AttrItemType, spec.Type); err != nil {
			return nil, err
		}
		if err := e.Set(AttrItemValue, spec.Value); err != nil {
			return nil, err
		}
		return e, nil
	}
}
