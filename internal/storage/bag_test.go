package storage

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestBagSetGet(t *testing.T) {
	var b Bag

	if err := b.Set("count", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var n int
	found, err := b.Get("count", &n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "value", n, 7)
}

func TestBagGetMissing(t *testing.T) {
	b := Bag{}

	var n int
	found, err := b.Get("absent", &n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, false)
}

func TestBagGetNilBag(t *testing.T) {
	var b Bag

	var n int
	found, err := b.Get("anything", &n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, false)
	testutil.AssertEqual(t, "has", b.Has("anything"), false)
}

func TestBagGetWrongShape(t *testing.T) {
	var b Bag
	if err := b.Set("name", "Wei"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var n int
	found, err := b.Get("name", &n)
	if !found {
		t.Error("key is present even when the shape mismatches")
	}
	if err == nil {
		t.Error("expected a decode error for the wrong shape")
	}
}

func TestBagStructValues(t *testing.T) {
	type policy struct {
		Rate float64  `json:"rate"`
		Tags []string `json:"tags"`
	}

	var b Bag
	if err := b.Set("policy", policy{Rate: 0.5, Tags: []string{"food"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got policy
	found, err := b.Get("policy", &got)
	if err != nil || !found {
		t.Fatalf("get = (%v, %v)", found, err)
	}
	testutil.AssertEqual(t, "rate", got.Rate, 0.5)
	testutil.AssertEqual(t, "tags length", len(got.Tags), 1)
}

func TestBagDelete(t *testing.T) {
	var b Bag
	if err := b.Set("key", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.Delete("key")
	testutil.AssertEqual(t, "has after delete", b.Has("key"), false)
}

func TestBagClone(t *testing.T) {
	var b Bag
	if err := b.Set("count", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := b.Clone()
	if err := c.Set("count", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var n int
	if _, err := b.Get("count", &n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "original after clone mutation", n, 1)
}
