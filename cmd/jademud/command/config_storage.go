package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"

	"github.com/jademud/jademud/internal/game"
	"github.com/jademud/jademud/internal/player"
	"github.com/jademud/jademud/internal/storage"
)

type StorageConfig struct {
	Rooms AssetConfig[*game.RoomSpec] `json:"rooms"`
	NPCs  AssetConfig[*game.NPCSpec]  `json:"npcs"`
	Items AssetConfig[*game.ItemSpec] `json:"items"`

	Characters CharacterStoreConfig `json:"characters"`
}

func (c *StorageConfig) BuildDictionary() (*game.Dictionary, error) {
	rooms, err := c.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	npcs, err := c.NPCs.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating npc store: %w", err)
	}
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	dict := &game.Dictionary{
		Rooms: rooms,
		NPCs:  npcs,
		Items: items,
	}

	if err := dict.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return dict, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.NPCs.Validate("npcs"))
	el.Add(c.Items.Validate("items"))
	el.Add(c.Characters.validate())
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

// CharacterStoreConfig selects where character records live: a directory of
// JSON files or a single bolt database.
type CharacterStoreConfig struct {
	Driver string `json:"driver"` // "file" or "bolt"
	Path   string `json:"path"`
}

func (c *CharacterStoreConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Driver {
	case "file", "bolt":
	default:
		el.Add(fmt.Errorf("characters: unknown driver %q", c.Driver))
	}
	if c.Path == "" {
		el.Add(fmt.Errorf("characters: path is required"))
	}

	return el.Err()
}

func (c *CharacterStoreConfig) BuildStore() (storage.Storer[*player.Character], error) {
	switch c.Driver {
	case "file":
		return storage.NewFileStore[*player.Character](c.Path)
	case "bolt":
		if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating character db directory: %w", err)
		}
		return storage.NewBoltStore[*player.Character](c.Path, "characters")
	default:
		return nil, fmt.Errorf("unknown character store driver %q", c.Driver)
	}
}
