package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinkard/sundris/internal/engine"
)

func TestParseItemNameAndQuantity(t *testing.T) {
	cases := []struct {
		args     string
		name     string
		quantity int64
	}{
		{"arrow 5", "arrow", 5},
		{"holy sword 1", "holy sword", 1},
		{"arrow", "arrow", 1},
		{"holy sword", "holy sword", 1},
		{"", "", 1},
	}
	for _, c := range cases {
		name, quantity := parseItemNameAndQuantity(c.args)
		assert.Equal(t, c.name, name, "args=%q", c.args)
		assert.Equal(t, c.quantity, quantity, "args=%q", c.args)
	}
}

func TestParseSellArgs(t *testing.T) {
	cases := []struct {
		args string
		want sellArgs
		ok   bool
	}{
		{"item1 5 20", sellArgs{engine.Immediate, "item1", 5, 20}, true},
		{"item1 20", sellArgs{engine.Immediate, "item1", 1, 20}, true},
		{"auction item1 5 20", sellArgs{engine.Auction, "item1", 5, 20}, true},
		{"immediate holy sword 2 100", sellArgs{engine.Immediate, "holy sword", 2, 100}, true},
		{"immidiate sword 20", sellArgs{engine.Immediate, "immidiate sword", 1, 20}, true},
		{"20", sellArgs{}, false},
		{"", sellArgs{}, false},
	}
	for _, c := range cases {
		got, ok := parseSellArgs(c.args)
		assert.Equal(t, c.ok, ok, "args=%q", c.args)
		if c.ok {
			assert.Equal(t, c.want, got, "args=%q", c.args)
		}
	}
}

func TestParseBuyArgs(t *testing.T) {
	bid := int64(30)

	got, ok := parseBuyArgs("5")
	assert.True(t, ok)
	assert.Equal(t, buyArgs{orderID: 5}, got)

	got, ok = parseBuyArgs("5 30")
	assert.True(t, ok)
	if assert.NotNil(t, got.bid) {
		assert.Equal(t, bid, *got.bid)
	}
	assert.Equal(t, int64(5), got.orderID)

	_, ok = parseBuyArgs("")
	assert.False(t, ok)

	_, ok = parseBuyArgs("abc")
	assert.False(t, ok)

	_, ok = parseBuyArgs("5 30 99")
	assert.False(t, ok)
}
