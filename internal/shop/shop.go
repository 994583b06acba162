// Package shop implements merchant commerce: buying listed goods and
// selling items back under a merchant's recycle policy. Every trade either
// applies completely or not at all.
package shop

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jademud/jademud/internal/game"
)

// Result is the outcome of one trade attempt. Message is player-facing;
// Data carries the structured payload surfaced to command callers.
type Result struct {
	Success bool
	Message string
	Data    map[string]any
}

// Shop wraps one merchant entity for the duration of a trade.
type Shop struct {
	merchant *game.Entity
	world    *game.World
	spawn    game.SpawnFunc
}

// New builds a trade session against a merchant. The merchant must carry a
// goods list.
func New(world *game.World, merchant *game.Entity, spawn game.SpawnFunc) (*Shop, error) {
	if !merchant.IsMerchant() {
		return nil, fmt.Errorf("%s is not a merchant", merchant.Name())
	}
	return &Shop{
		merchant: merchant,
		world:    world,
		spawn:    spawn,
	}, nil
}

// Goods returns the merchant's offerings in listing order.
func (s *Shop) Goods() []game.Good {
	return s.merchant.Goods()
}

// BuyGood sells one unit of a listed good to the buyer. The selector is a
// 1-based listing position or a name matched the same way entities are
// matched. Preconditions are checked in a fixed order so the buyer always
// hears about the most fundamental problem first: the good must exist, must
// be in stock, and must be affordable. State changes only after every check
// passes.
func (s *Shop) BuyGood(buyer *game.Entity, selector string) *Result {
	goods := s.merchant.Goods()

	idx := findGood(goods, selector)
	if idx < 0 {
		return &Result{
			Message: fmt.Sprintf("%s does not sell that.", s.merchant.Name()),
			Data:    map[string]any{"action": "buy", "moneyChanged": false},
		}
	}
	good := goods[idx]

	if good.Stock == 0 {
		return &Result{
			Message: fmt.Sprintf("%s is sold out.", capitalizedName(good)),
			Data:    map[string]any{"action": "buy", "moneyChanged": false},
		}
	}

	if buyer.Silver() < good.Price {
		return &Result{
			Message: fmt.Sprintf("You cannot afford %s (%d silver).", good.Name, good.Price),
			Data:    map[string]any{"action": "buy", "moneyChanged": false},
		}
	}

	item, err := s.spawn(good.BlueprintId)
	if err != nil {
		return &Result{
			Message: fmt.Sprintf("%s rummages around but comes up empty.", s.merchant.Name()),
			Data:    map[string]any{"action": "buy", "moneyChanged": false},
		}
	}

	// Commit. Stock of -1 is unlimited and never decrements.
	if good.Stock > 0 {
		goods[idx].Stock--
		if err := s.merchant.SetGoods(goods); err != nil {
			return failedTrade("buy", err)
		}
	}
	if err := buyer.SetSilver(buyer.Silver() - good.Price); err != nil {
		return failedTrade("buy", err)
	}
	if err := s.merchant.SetSilver(s.merchant.Silver() + good.Price); err != nil {
		return failedTrade("buy", err)
	}
	if err := s.world.Add(item); err != nil {
		return failedTrade("buy", err)
	}
	if err := s.world.Place(item, buyer); err != nil {
		return failedTrade("buy", err)
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("You buy %s for %d silver.", good.Name, good.Price),
		Data: map[string]any{
			"action":          "buy",
			"price":           good.Price,
			"remainingSilver": buyer.Silver(),
			"stockLeft":       goods[idx].Stock,
			"moneyChanged":    true,
		},
	}
}

// SellItem buys an item back from the seller under the merchant's recycle
// policy. The item is destroyed and the seller is credited
// max(minPrice, floor(value * rate)) silver.
func (s *Shop) SellItem(seller *game.Entity, item *game.Entity) *Result {
	policy, ok := s.merchant.Recycle()
	if !ok || !policy.Enabled {
		return &Result{
			Message: fmt.Sprintf("%s does not buy anything.", s.merchant.Name()),
			Data:    map[string]any{"action": "sell", "moneyChanged": false},
		}
	}

	if !policy.Accepts(item.ItemType()) {
		msg := policy.RejectionMessage
		if msg == "" {
			msg = fmt.Sprintf("%s has no interest in %s.", s.merchant.Name(), item.Name())
		}
		return &Result{
			Message: msg,
			Data:    map[string]any{"action": "sell", "moneyChanged": false},
		}
	}

	price := recyclePrice(policy, item.ItemValue())

	name := item.Name()
	s.world.Destroy(item)
	if err := seller.SetSilver(seller.Silver() + price); err != nil {
		return failedTrade("sell", err)
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("You sell %s to %s for %d silver.", name, s.merchant.Name(), price),
		Data: map[string]any{
			"action":          "sell",
			"merchantName":    s.merchant.Name(),
			"itemName":        name,
			"price":           price,
			"remainingSilver": seller.Silver(),
			"moneyChanged":    true,
		},
	}
}

// recyclePrice floors the rated value and applies the policy's minimum.
func recyclePrice(p *game.RecyclePolicy, value int) int {
	price := int(math.Floor(float64(value) * p.PriceRate))
	if price < p.MinPrice {
		price = p.MinPrice
	}
	return price
}

// findGood resolves a selector to a listing index, or -1. Numeric selectors
// are 1-based positions; anything else matches good names the way entity
// queries do.
func findGood(goods []game.Good, selector string) int {
	if n, err := strconv.Atoi(selector); err == nil {
		if n >= 1 && n <= len(goods) {
			return n - 1
		}
		return -1
	}
	for i, g := range goods {
		if game.MatchName(g.Name, selector) {
			return i
		}
	}
	return -1
}

func capitalizedName(g game.Good) string {
	if g.Short != "" {
		return g.Short
	}
	return g.Name
}

func failedTrade(action string, err error) *Result {
	return &Result{
		Message: fmt.Sprintf("The trade falls through: %v.", err),
		Data:    map[string]any{"action": action, "moneyChanged": false},
	}
}
