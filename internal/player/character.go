package player

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/jademud/jademud/internal/storage"
)

// Character is the persistent record behind a player entity. The live
// entity's attribute bag is snapshotted into Attrs on save and restored on
// login.
type Character struct {
	Name     string `json:"name"`
	Password string `json:"password"` // bcrypt hash

	// Room is the entity id of the room the character last stood in.
	Room string `json:"room,omitempty"`

	Attrs storage.Bag `json:"attrs,omitempty"`
}

func (c *Character) Validate() error {
	el := errors.NewErrorList()
	if c.Name == "" {
		el.Add(fmt.Errorf("character name is required"))
	}
	if c.Password == "" {
		el.Add(fmt.Errorf("character password hash is required"))
	}
	return el.Err()
}

// SetPassword hashes and stores a plaintext password.
func (c *Character) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	c.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (c *Character) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(plain)) == nil
}
