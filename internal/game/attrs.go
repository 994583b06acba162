package game

import "time"

// Known attribute keys. The bag itself is schemaless; this registry is the
// one place documenting what each key holds so readers can decode safely.
//
//	silver       int            currency on players and npcs
//	affiliation  string         faction tag checked by checkpoints
//	item_type    string         recycle category of an item ("food", ...)
//	item_value   int            base worth of an item in silver
//	equipped     []string       item entity ids currently worn by a player
//	shop_goods   []Good         a merchant's offerings, display order
//	shop_recycle RecyclePolicy  a merchant's buy-back configuration
const (
	AttrSilver      = "silver"
	AttrAffiliation = "affiliation"
	AttrItemType    = "item_type"
	AttrItemValue   = "item_value"
	AttrEquipped    = "equipped"
	AttrGoods       = "shop_goods"
	AttrRecycle     = "shop_recycle"
)

// Good is one sellable offering on a merchant. Stock of -1 means unlimited
// and never decrements.
type Good struct {
	BlueprintId string `json:"blueprint_id"`
	Name        string `json:"name"`
	Short       string `json:"short"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
}

// RecyclePolicy governs which item types a merchant buys back and at what
// rate. DeniedTypes wins whenever a type appears in both sets.
type RecyclePolicy struct {
	Enabled          bool     `json:"enabled"`
	AllowedTypes     []string `json:"allowed_types"`
	DeniedTypes      []string `json:"denied_types"`
	PriceRate        float64  `json:"price_rate"`
	MinPrice         int      `json:"min_price"`
	RejectionMessage string   `json:"rejection_message"`
}

// Accepts reports whether the policy buys items of the given type.
func (p *RecyclePolicy) Accepts(itemType string) bool {
	if !p.Enabled {
		return false
	}
	for _, t := range p.DeniedTypes {
		if t == itemType {
			return false
		}
	}
	for _, t := range p.AllowedTypes {
		if t == itemType {
			return true
		}
	}
	return false
}

// Silver returns the entity's currency balance. Absent means zero.
func (e *Entity) Silver() int {
	var n int
	_, _ = e.Get(AttrSilver, &n)
	return n
}

func (e *Entity) SetSilver(n int) error {
	return e.Set(AttrSilver, n)
}

// Affiliation returns the entity's faction tag, or "".
func (e *Entity) Affiliation() string {
	var s string
	_, _ = e.Get(AttrAffiliation, &s)
	return s
}

// ItemType returns the recycle category of an item entity, or "".
func (e *Entity) ItemType() string {
	var s string
	_, _ = e.Get(AttrItemType, &s)
	return s
}

// ItemValue returns the base worth of an item entity in silver.
func (e *Entity) ItemValue() int {
	var n int
	_, _ = e.Get(AttrItemValue, &n)
	return n
}

// Goods returns a merchant's offerings, or nil for non-merchants.
func (e *Entity) Goods() []Good {
	var goods []Good
	_, _ = e.Get(AttrGoods, &goods)
	return goods
}

func (e *Entity) SetGoods(goods []Good) error {
	return e.Set(AttrGoods, goods)
}

// Recycle returns a merchant's buy-back policy, if it has one.
func (e *Entity) Recycle() (*RecyclePolicy, bool) {
	var p RecyclePolicy
	ok, err := e.Get(AttrRecycle, &p)
	if !ok || err != nil {
		return nil, false
	}
	return &p, true
}

// IsMerchant reports whether the entity carries a goods list.
func (e *Entity) IsMerchant() bool {
	return e.attrs.Has(AttrGoods)
}

// Equipped returns the item entity ids the player currently has equipped.
func (e *Entity) Equipped() []string {
	var ids []string
	_, _ = e.Get(AttrEquipped, &ids)
	return ids
}

// IsEquipped reports whether the given item entity id is equipped.
func (e *Entity) IsEquipped(itemId string) bool {
	for _, id := range e.Equipped() {
		if id == itemId {
			return true
		}
	}
	return false
}

// Equip marks an item id as equipped. The caller checks the item is in the
// entity's inventory.
func (e *Entity) Equip(itemId string) error {
	if e.IsEquipped(itemId) {
		return nil
	}
	return e.Set(AttrEquipped, append(e.Equipped(), itemId))
}

// Unequip clears the equipped mark for an item id.
func (e *Entity) Unequip(itemId string) error {
	ids := e.Equipped()
	for i, id := range ids {
		if id == itemId {
			return e.Set(AttrEquipped, append(ids[:i], ids[i+1:]...))
		}
	}
	return nil
}

// GrantPass stores a timed access pass in the entity's temp store. The pass
// is valid while its timestamp is strictly in the future and is reset to 0
// when consumed.
func GrantPass(e *Entity, key string, until time.Time) error {
	return e.SetTemp(key, until.Unix())
}

// PassValid reports whether the temp pass at key is currently valid.
func PassValid(e *Entity, key string, now time.Time) bool {
	var ts int64
	ok, err := e.GetTemp(key, &ts)
	if !ok || err != nil {
		return false
	}
	return ts > now.Unix()
}
