package game

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

// ChatFunc is invoked whenever anyone asks the npc about anything,
// independent of whether the inquiry table has a matching entry. It may
// mutate the speaker (granting a pass, for instance).
type ChatFunc func(speaker *Entity, keyword string)

// NPCFacet carries the npc-specific state of an entity.
type NPCFacet struct {
	// Inquiry maps chat keywords to replies. The "default" entry answers
	// unknown keywords.
	Inquiry map[string]string

	OnChat ChatFunc

	// InCombat and Defeated gate checkpoint guarding: a fighting or
	// defeated guard is inactive.
	InCombat bool
	Defeated bool
}

// InquiryDefault is the fallback keyword in an npc inquiry table.
const InquiryDefault = "default"

// Ask runs the two independent chat channels against an npc: the chat hook
// always fires first, then the inquiry table answers. Falls back to the
// table's default entry, then to a generic non-answer.
func Ask(npc, speaker *Entity, keyword string) string {
	facet, ok := npc.NPC()
	if !ok {
		return fmt.Sprintf("%s does not respond.", npc.Name())
	}

	if facet.OnChat != nil {
		facet.OnChat(speaker, keyword)
	}

	if reply, ok := facet.Inquiry[keyword]; ok {
		return reply
	}
	if reply, ok := facet.Inquiry[InquiryDefault]; ok {
		return reply
	}
	return fmt.Sprintf("%s does not respond.", npc.Name())
}

// PassGrantSpec configures an npc to hand out a timed access pass when
// asked about a specific keyword.
type PassGrantSpec struct {
	Keyword string `json:"keyword"`
	Key     string `json:"key"` // temp key the pass is stored under
	TTL     string `json:"ttl"` // duration string, e.g. "5m"
}

func (p *PassGrantSpec) Validate() error {
	el := errors.NewErrorList()
	if p.Keyword == "" {
		el.Add(fmt.Errorf("pass keyword is required"))
	}
	if p.Key == "" {
		el.Add(fmt.Errorf("pass key is required"))
	}
	d, err := time.ParseDuration(p.TTL)
	if err != nil {
		el.Add(fmt.Errorf("parsing pass ttl: %w", err))
	} else if d <= 0 {
		el.Add(fmt.Errorf("pass ttl must be positive"))
	}
	return el.Err()
}

// MerchantSpec configures an npc as a merchant.
type MerchantSpec struct {
	Goods   []Good         `json:"goods"`
	Recycle *RecyclePolicy `json:"recycle,omitempty"`
}

func (m *MerchantSpec) Validate() error {
	el := errors.NewErrorList()
	if len(m.Goods) == 0 {
		el.Add(fmt.Errorf("merchant goods list must not be empty"))
	}
	for i, g := range m.Goods {
		if g.BlueprintId == "" {
			el.Add(fmt.Errorf("good %d: blueprint_id is required", i))
		}
		if g.Name == "" {
			el.Add(fmt.Errorf("good %d: name is required", i))
		}
		if g.Price <= 0 {
			el.Add(fmt.Errorf("good %d: price must be positive", i))
		}
		if g.Stock < -1 {
			el.Add(fmt.Errorf("good %d: stock must be -1 (unlimited) or non-negative", i))
		}
	}
	if m.Recycle != nil {
		if m.Recycle.PriceRate <= 0 || m.Recycle.PriceRate > 1 {
			el.Add(fmt.Errorf("recycle price_rate must be in (0,1]"))
		}
		if m.Recycle.MinPrice < 0 {
			el.Add(fmt.Errorf("recycle min_price must be non-negative"))
		}
	}
	return el.Err()
}

// NPCSpec is an npc definition loaded from asset files. Spawned instances
// share the definition; per-instance state lives on the entity.
type NPCSpec struct {
	Name  string `json:"name"`
	Short string `json:"short"`

	Affiliation string            `json:"affiliation,omitempty"`
	Silver      int               `json:"silver,omitempty"`
	Inquiry     map[string]string `json:"inquiry,omitempty"`
	Pass        *PassGrantSpec    `json:"pass,omitempty"`
	Merchant    *MerchantSpec     `json:"merchant,omitempty"`

	// Respawn is how long after defeat the npc reappears at its spawn
	// point. Empty means never.
	Respawn string `json:"respawn,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (n *NPCSpec) Validate() error {
	el := errors.NewErrorList()

	if n.Name == "" {
		el.Add(fmt.Errorf("npc name is required"))
	}
	if n.Pass != nil {
		el.Add(n.Pass.Validate())
	}
	if n.Merchant != nil {
		el.Add(n.Merchant.Validate())
	}
	if n.Respawn != "" {
		if _, err := time.ParseDuration(n.Respawn); err != nil {
			el.Add(fmt.Errorf("parsing respawn: %w", err))
		}
	}

	return el.Err()
}

// Resolve checks that merchant goods reference existing item blueprints.
func (n *NPCSpec) Resolve(dict *Dictionary) error {
	if n.Merchant == nil {
		return nil
	}
	el := errors.NewErrorList()
	for _, g := range n.Merchant.Goods {
		if dict.Items.Get(g.BlueprintId) == nil {
			el.Add(fmt.Errorf("good %q: item blueprint %q not found", g.Name, g.BlueprintId))
		}
	}
	return el.Err()
}
