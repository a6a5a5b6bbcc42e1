/*
Package session implements the per-connection command loop: the greeting,
the login exchange, and the dispatch of every subsequent command to the
storage engine.

PURPOSE:
  Translate the wire protocol's plain-text commands into engine.Engine
  calls and render the engine's replies (or errors) back as the single
  response the protocol expects.

PROTOCOL:
  1. Server sends the greeting.
  2. Client's first message is a username; on success the server replies
     "Successfully logged in as <username>" and the loop below starts.
  3. Each subsequent message is "<command> [args...]"; the reply is
     written back verbatim, one response per request (view_sell_orders
     and help replies span several lines).
  4. Any engine error is rendered as "Failed to process request: <reason>".

SEE ALSO:
  - parse.go: the sell/buy/deposit/withdraw argument tokenizers
  - internal/server: owns the net.Conn and the read/write loop around Session
*/
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kinkard/sundris/internal/engine"
)

const Greeting = "Welcome to Sundris Auction House, stranger! How can I call you?"

const helpText = `Commands:
  ping
  whoami
  help
  view_items
  deposit <item> [qty]
  withdraw <item> [qty]
  view_sell_orders
  sell [immediate|auction] <item...> [qty] <price>
  buy <order_id> [bid]`

// Session holds the state needed to serve one connection: the engine it
// talks to, and the user it's authenticated as once login succeeds.
type Session struct {
	engine *engine.Engine
	user   engine.User
}

// New creates a Session bound to eng. Login must be called before Handle.
func New(eng *engine.Engine) *Session {
	return &Session{engine: eng}
}

// Login consumes the client's first message (a raw username) and
// authenticates it against the engine, returning the reply line to send.
func (s *Session) Login(ctx context.Context, message string) (string, error) {
	username := strings.TrimSpace(message)
	user, err := s.engine.Login(ctx, username)
	if err != nil {
		return "", fmt.Errorf("Failed to login: %s", errorReason(err))
	}
	s.user = user
	return fmt.Sprintf("Successfully logged in as %s", user.Username), nil
}

// Handle dispatches one command line and returns the single response to
// write back. It never returns an error: every failure is already
// folded into the "Failed to process request: <reason>" reply text.
func (s *Session) Handle(ctx context.Context, message string) string {
	command, args, _ := strings.Cut(strings.TrimSpace(message), " ")
	args = strings.TrimSpace(args)

	reply, err := s.dispatch(ctx, command, args)
	if err != nil {
		return fmt.Sprintf("Failed to process request: %s", errorReason(err))
	}
	return reply
}

func (s *Session) dispatch(ctx context.Context, command, args string) (string, error) {
	switch command {
	case "ping":
		return "pong", nil
	case "whoami":
		return s.user.Username, nil
	case "help":
		return helpText, nil
	case "view_items":
		return s.viewItems(ctx)
	case "deposit":
		return s.deposit(ctx, args)
	case "withdraw":
		return s.withdraw(ctx, args)
	case "view_sell_orders":
		return s.viewSellOrders(ctx)
	case "sell":
		return s.sell(ctx, args)
	case "buy":
		return s.buy(ctx, args)
	default:
		return "", fmt.Errorf("unknown command '%s'", command)
	}
}

func (s *Session) viewItems(ctx context.Context) (string, error) {
	items, err := s.engine.ViewItems(ctx, s.user.ID)
	if err != nil {
		return "", err
	}
	pairs := make([]string, len(items))
	for i, h := range items {
		pairs[i] = fmt.Sprintf("(%s, %d)", h.Name, h.Quantity)
	}
	return fmt.Sprintf("Items: [%s]", strings.Join(pairs, ", ")), nil
}

func (s *Session) deposit(ctx context.Context, args string) (string, error) {
	if args == "" {
		return "", fmt.Errorf("argument is required. Format: 'deposit <item name> [<quantity>]'")
	}
	itemName, quantity := parseItemNameAndQuantity(args)
	if err := s.engine.Deposit(ctx, s.user.ID, itemName, quantity); err != nil {
		return "", fmt.Errorf("failed to deposit %d %s(s): %s", quantity, itemName, errorReason(err))
	}
	return fmt.Sprintf("Successfully deposited %d %s(s)", quantity, itemName), nil
}

func (s *Session) withdraw(ctx context.Context, args string) (string, error) {
	if args == "" {
		return "", fmt.Errorf("argument is required. Format: 'withdraw <item name> [<quantity>]'")
	}
	itemName, quantity := parseItemNameAndQuantity(args)
	if err := s.engine.Withdraw(ctx, s.user.ID, itemName, quantity); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully withdrawed %d %s(s)", quantity, itemName), nil
}

func (s *Session) viewSellOrders(ctx context.Context) (string, error) {
	orders, err := s.engine.ViewSellOrders(ctx)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "No sell orders", nil
	}
	lines := make([]string, len(orders))
	for i, o := range orders {
		suffix := ""
		if o.Type() == engine.Auction {
			suffix = "on auction "
		}
		lines[i] = fmt.Sprintf("- #%d: %s is selling %d %s(s) for %d funds %suntil %s",
			o.ID, o.SellerName, o.Quantity, o.ItemName, o.Price, suffix, o.ExpirationTime)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) sell(ctx context.Context, args string) (string, error) {
	parsed, ok := parseSellArgs(args)
	if !ok {
		return "", fmt.Errorf("malformed sell command. Format: 'sell [immediate|auction] <item name> [<quantity>] <price>'")
	}
	// The wire protocol's sell command carries no explicit duration, so
	// every listing gets the same fixed one-week window before it falls
	// to the sweeper.
	const listingDuration = 7 * 24 * 60 * 60
	expirationTime := time.Now().Unix() + listingDuration

	if err := s.engine.PlaceSellOrder(ctx, parsed.orderType, s.user.ID, parsed.itemName, parsed.quantity, parsed.price, expirationTime); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully placed %s sell order for %d %s(s)", parsed.orderType, parsed.quantity, parsed.itemName), nil
}

func (s *Session) buy(ctx context.Context, args string) (string, error) {
	parsed, ok := parseBuyArgs(args)
	if !ok {
		return "", fmt.Errorf("malformed buy command. Format: 'buy <order_id> [<bid>]'")
	}
	if parsed.bid == nil {
		if err := s.engine.ExecuteImmediateSellOrder(ctx, s.user.ID, parsed.orderID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully bought order #%d", parsed.orderID), nil
	}
	if err := s.engine.PlaceBid(ctx, s.user.ID, parsed.orderID, *parsed.bid); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully placed bid of %d on order #%d", *parsed.bid, parsed.orderID), nil
}

// errorReason strips the sentinel error's Go-idiomatic "kind: " prefix, if
// present, so the text on the wire reads like the rest of the protocol's
// replies rather than exposing the internal error-kind vocabulary.
func errorReason(err error) string {
	msg := err.Error()
	for _, kind := range []error{
		engine.ErrInvalidArgument, engine.ErrNotFound, engine.ErrConflict,
		engine.ErrIntegrityViolation, engine.ErrIOError, engine.ErrInternal,
	} {
		if prefix := kind.Error() + ": "; strings.HasPrefix(msg, prefix) {
			return msg[len(prefix):]
		}
	}
	return msg
}
