/*
parse.go - Argument tokenizers for the command protocol.

The item-name tokenizers follow the same trick as the original command
parser: locate the trailing whitespace-separated integer token and treat
everything before it as the name; if the last token doesn't parse as an
integer, the whole remainder is the name and the quantity defaults to 1.
The sell price is the exception: it is mandatory, and a sell line whose
last token is not an integer is rejected. Buy arguments are split into at
most two integer fields.
*/
package session

import (
	"strconv"
	"strings"

	"github.com/kinkard/sundris/internal/engine"
)

// parseItemNameAndQuantity splits "deposit"/"withdraw" arguments into an
// item name and a quantity, defaulting quantity to 1 when the trailing
// token isn't an integer.
//
//	"arrow 5"       -> ("arrow", 5)
//	"holy sword 1"  -> ("holy sword", 1)
//	"arrow"         -> ("arrow", 1)
//	""              -> ("", 1)
func parseItemNameAndQuantity(args string) (string, int64) {
	if pos := strings.LastIndex(args, " "); pos >= 0 {
		if quantity, err := strconv.ParseInt(args[pos+1:], 10, 64); err == nil {
			return args[:pos], quantity
		}
	}
	return args, 1
}

// sellArgs is the parsed form of a `sell` command's argument string.
type sellArgs struct {
	orderType engine.OrderType
	itemName  string
	quantity  int64
	price     int64
}

// parseSellArgs parses "[immediate|auction] <item name> [qty] <price>".
// The trailing token is always price (mandatory, no default). The type
// token is recognized only as the very first word and is never aliased -
// the typo "immidiate" is treated as part of the item name, per the wire
// protocol's documented quirk.
func parseSellArgs(args string) (sellArgs, bool) {
	rest, price, ok := splitTrailingInt(args)
	if !ok {
		return sellArgs{}, false
	}

	orderType := engine.Immediate
	if word, tail, found := strings.Cut(rest, " "); found {
		if t, ok := engine.ParseOrderType(word); ok && word != "" {
			orderType = t
			rest = tail
		}
	} else if t, ok := engine.ParseOrderType(word); ok && word != "" {
		orderType = t
		rest = ""
	}

	itemName, quantity := parseTrailingQuantityOrOne(rest)
	if itemName == "" {
		return sellArgs{}, false
	}
	return sellArgs{orderType: orderType, itemName: itemName, quantity: quantity, price: price}, true
}

// buyArgs is the parsed form of a `buy` command's argument string.
type buyArgs struct {
	orderID int64
	bid     *int64
}

// parseBuyArgs parses "<order_id> [bid]". A missing bid means "execute the
// immediate order"; a present bid means "place a bid on the auction".
func parseBuyArgs(args string) (buyArgs, bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return buyArgs{}, false
	}
	orderID, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return buyArgs{}, false
	}
	if len(fields) == 1 {
		return buyArgs{orderID: orderID}, true
	}
	bid, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return buyArgs{}, false
	}
	return buyArgs{orderID: orderID, bid: &bid}, true
}

// splitTrailingInt locates the last whitespace-separated token and parses
// it as an integer, returning everything before it and the parsed value.
func splitTrailingInt(args string) (rest string, value int64, ok bool) {
	pos := strings.LastIndex(args, " ")
	var tail string
	if pos < 0 {
		tail = args
		rest = ""
	} else {
		tail = args[pos+1:]
		rest = args[:pos]
	}
	value, err := strconv.ParseInt(tail, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return rest, value, true
}

// parseTrailingQuantityOrOne mirrors parseItemNameAndQuantity but never
// sees the price token, since the caller already stripped it.
func parseTrailingQuantityOrOne(args string) (string, int64) {
	return parseItemNameAndQuantity(args)
}
