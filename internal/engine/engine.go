/*
engine.go - The storage engine: the single writer of all auction-house state.

OWNERSHIP:
  Engine wraps exactly one *sql.DB, pinned to a single physical connection
  (SetMaxOpenConns(1)), and serializes every operation behind a mutex. This
  makes the whole engine a single critical section per call: operations
  never interleave, so the persistent store's own transactions only need to
  provide atomicity, not isolation across callers.

SCHEMA:
  users          id, username
  items          id, name (row name='funds' preloaded)
  user_items     (user_id, item_id) -> quantity, CHECK quantity >= 0
  sell_orders    id, seller_id, item_id, quantity, price, expiration_time,
                 buyer_id (NULL | seller_id | another user - see types.go)

WAL MODE:
  File-backed databases are opened with PRAGMA journal_mode=WAL and
  PRAGMA synchronous=NORMAL for crash-safe, low-latency commits. The
  :memory: backing used by tests is exempt - WAL has no meaning there.

USAGE:
  eng, err := engine.Open("./data/auction.db")
  if err != nil {
      log.Fatal(err)
  }
  defer eng.Close()

  user, err := eng.Login(ctx, "alice")

SEE ALSO:
  - types.go: domain types (User, SellOrder, OrderType, Fee)
  - errors.go: sentinel error kinds
*/
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Engine is the transactional storage engine. It is safe for concurrent use;
// every exported method acquires an internal mutex for its full duration.
type Engine struct {
	db          *sql.DB
	mu          sync.Mutex
	fundsItemID int64
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	username TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS user_items (
	user_id INTEGER NOT NULL,
	item_id INTEGER NOT NULL,
	quantity INTEGER NOT NULL CHECK(quantity >= 0),
	FOREIGN KEY (user_id) REFERENCES users (id),
	FOREIGN KEY (item_id) REFERENCES items (id),
	PRIMARY KEY (user_id, item_id)
);

-- buyer_id is NULL, seller_id (immediate) or another user's id (auction with bid)
CREATE TABLE IF NOT EXISTS sell_orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	seller_id INTEGER NOT NULL,
	item_id INTEGER NOT NULL,
	quantity INTEGER NOT NULL CHECK(quantity > 0),
	price INTEGER NOT NULL CHECK(price > 0),
	expiration_time INTEGER NOT NULL,
	buyer_id INTEGER,
	FOREIGN KEY (seller_id) REFERENCES users (id),
	FOREIGN KEY (buyer_id) REFERENCES users (id),
	FOREIGN KEY (item_id) REFERENCES items (id)
);
CREATE INDEX IF NOT EXISTS sell_orders_expiration_time ON sell_orders (expiration_time);

INSERT OR IGNORE INTO items (name) VALUES ('funds');
`

// Open opens (and, if needed, creates) the backing SQLite database at path.
// Use ":memory:" for an ephemeral database with no WAL requirement.
func Open(path string) (*Engine, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrIOError, err)
	}
	// The engine IS the single writer; pin the pool to one physical
	// connection so that holds even before the mutex in §5 is considered.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		var mode string
		if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: failed to enable WAL mode: %v", ErrIOError, err)
		}
		if !strings.EqualFold(mode, "wal") {
			db.Close()
			return nil, fmt.Errorf("%w: failed to enable WAL mode, current journal mode: %s", ErrIOError, mode)
		}
		if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: failed to set synchronous mode: %v", ErrIOError, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to create schema: %v", ErrIOError, err)
	}

	var fundsItemID int64
	if err := db.QueryRow("SELECT id FROM items WHERE name = ?", FundsItem).Scan(&fundsItemID); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to load funds item: %v", ErrIOError, err)
	}

	return &Engine{db: db, fundsItemID: fundsItemID}, nil
}

// Close closes the underlying database connection.
func (e *Engine) Close() error {
	return e.db.Close()
}

// execer is satisfied by both *sql.DB and *sql.Tx, letting helpers run
// either as a standalone statement or as a step of a larger transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// =============================================================================
// 4.2.1 login
// =============================================================================

// Login returns the user with the given username, creating it (along with a
// zeroed funds holding) on first sight. Idempotent on repeated calls.
func (e *Engine) Login(ctx context.Context, username string) (User, error) {
	if username == "" {
		return User{}, fmt.Errorf("%w: username cannot be empty", ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var id int64
	err := e.db.QueryRowContext(ctx, "SELECT id FROM users WHERE username = ?", username).Scan(&id)
	switch {
	case err == nil:
		return User{ID: UserID(id), Username: username}, nil
	case err != sql.ErrNoRows:
		return User{}, fmt.Errorf("%w: failed to look up user: %v", ErrIOError, err)
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return User{}, fmt.Errorf("%w: failed to begin transaction: %v", ErrIOError, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "INSERT INTO users (username) VALUES (?)", username)
	if err != nil {
		return User{}, fmt.Errorf("%w: failed to create user: %v", ErrIOError, err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("%w: failed to read new user id: %v", ErrIOError, err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_items (user_id, item_id, quantity) VALUES (?, ?, 0)",
		newID, e.fundsItemID,
	); err != nil {
		return User{}, fmt.Errorf("%w: failed to initialize funds holding: %v", ErrIOError, err)
	}

	if err := tx.Commit(); err != nil {
		return User{}, fmt.Errorf("%w: failed to commit: %v", ErrIOError, err)
	}

	return User{ID: UserID(newID), Username: username}, nil
}

// =============================================================================
// 4.2.2 view_items
// =============================================================================

// ViewItems returns every holding for the user, ordered by ascending
// item_id (funds - the first item ever created - sorts first).
func (e *Engine) ViewItems(ctx context.Context, userID UserID) ([]Holding, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows, err := e.db.QueryContext(ctx, `
		SELECT items.name, user_items.quantity
		FROM user_items
		INNER JOIN items ON user_items.item_id = items.id
		WHERE user_items.user_id = ?
		ORDER BY user_items.item_id ASC`, int64(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query holdings: %v", ErrIOError, err)
	}
	defer rows.Close()

	var holdings []Holding
	for rows.Next() {
		var h Holding
		if err := rows.Scan(&h.Name, &h.Quantity); err != nil {
			return nil, fmt.Errorf("%w: failed to scan holding: %v", ErrIOError, err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate holdings: %v", ErrIOError, err)
	}
	return holdings, nil
}

// =============================================================================
// 4.2.3 deposit
// =============================================================================

// Deposit credits quantity of item_name to the user's holdings, auto-
// creating the item if it doesn't exist yet.
func (e *Engine) Deposit(ctx context.Context, userID UserID, itemName string, quantity int64) error {
	if itemName == "" {
		return fmt.Errorf("%w: item name cannot be empty", ErrInvalidArgument)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrIOError, err)
	}
	defer tx.Rollback()

	itemID, err := e.getOrCreateItemID(ctx, tx, itemName)
	if err != nil {
		return err
	}
	if err := e.depositInner(ctx, tx, userID, itemID, quantity); err != nil {
		return fmt.Errorf("%w: failed to deposit %d %s(s): %v", ErrConflict, quantity, itemName, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", ErrIOError, err)
	}
	return nil
}

// =============================================================================
// 4.2.4 withdraw
// =============================================================================

// Withdraw debits quantity of item_name from the user's holdings. Every
// failure path (empty name, non-positive quantity, unknown item, no
// holding, insufficient quantity) surfaces the same message, per spec.
func (e *Engine) Withdraw(ctx context.Context, userID UserID, itemName string, quantity int64) error {
	notEnough := fmt.Errorf("%w: Not enough %s(s) to withdraw", ErrConflict, itemName)
	if itemName == "" || quantity <= 0 {
		return notEnough
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrIOError, err)
	}
	defer tx.Rollback()

	itemID, err := e.getItemID(ctx, tx, itemName)
	if err != nil {
		return notEnough
	}
	if err := e.withdrawInner(ctx, tx, userID, itemID, quantity); err != nil {
		return notEnough
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", ErrIOError, err)
	}
	return nil
}

// =============================================================================
// 4.2.5 view_sell_orders
// =============================================================================

// ViewSellOrders returns every live sell order, ordered by ascending id.
func (e *Engine) ViewSellOrders(ctx context.Context) ([]SellOrder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows, err := e.db.QueryContext(ctx, `
		SELECT
			sell_orders.id,
			users.username,
			items.name,
			sell_orders.quantity,
			sell_orders.price,
			sell_orders.expiration_time,
			sell_orders.seller_id,
			sell_orders.buyer_id
		FROM sell_orders
		INNER JOIN users ON sell_orders.seller_id = users.id
		INNER JOIN items ON sell_orders.item_id = items.id
		ORDER BY sell_orders.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query sell orders: %v", ErrIOError, err)
	}
	defer rows.Close()

	var orders []SellOrder
	for rows.Next() {
		var o SellOrder
		var sellerID int64
		var buyerID sql.NullInt64
		var expirationUnix int64
		if err := rows.Scan(&o.ID, &o.SellerName, &o.ItemName, &o.Quantity, &o.Price,
			&expirationUnix, &sellerID, &buyerID); err != nil {
			return nil, fmt.Errorf("%w: failed to scan sell order: %v", ErrIOError, err)
		}
		o.ExpirationTime = time.Unix(expirationUnix, 0).UTC().Format("2006-01-02 15:04:05")
		o.SellerID = UserID(sellerID)
		if buyerID.Valid {
			b := UserID(buyerID.Int64)
			o.BuyerID = &b
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate sell orders: %v", ErrIOError, err)
	}
	return orders, nil
}

// =============================================================================
// 4.2.6 place_sell_order
// =============================================================================

// PlaceSellOrder debits the seller quantity of item_name and the listing
// fee, then inserts a new sell order. All-or-nothing.
func (e *Engine) PlaceSellOrder(ctx context.Context, orderType OrderType, sellerID UserID, itemName string, quantity, price, expirationTime int64) error {
	if quantity < 0 {
		return fmt.Errorf("%w: cannot sell negative amount", ErrInvalidArgument)
	}
	if price < 0 {
		return fmt.Errorf("%w: cannot sell for negative price", ErrInvalidArgument)
	}
	if itemName == FundsItem {
		return fmt.Errorf("%w: cannot sell funds for funds, it's a speculation!", ErrConflict)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrIOError, err)
	}
	defer tx.Rollback()

	itemID, err := e.getItemID(ctx, tx, itemName)
	if err != nil {
		return fmt.Errorf("%w: Not enough %s(s) to sell", ErrConflict, itemName)
	}
	if err := e.withdrawInner(ctx, tx, sellerID, itemID, quantity); err != nil {
		return fmt.Errorf("%w: Not enough %s(s) to sell", ErrConflict, itemName)
	}

	fee := Fee(price)
	if err := e.withdrawInner(ctx, tx, sellerID, e.fundsItemID, fee); err != nil {
		return fmt.Errorf("%w: Not enough funds to pay %d funds fee (which is 5%% + 1)", ErrConflict, fee)
	}

	var buyerID any
	if orderType == Immediate {
		buyerID = int64(sellerID)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sell_orders (seller_id, item_id, quantity, price, expiration_time, buyer_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		int64(sellerID), itemID, quantity, price, expirationTime, buyerID,
	); err != nil {
		return fmt.Errorf("%w: failed to create sell order: %v", ErrIntegrityViolation, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", ErrIOError, err)
	}
	return nil
}

// =============================================================================
// 4.2.7 execute_immediate_sell_order
// =============================================================================

// ExecuteImmediateSellOrder settles an Immediate order: funds move from
// buyer to seller, the item moves to the buyer, and the order is deleted.
func (e *Engine) ExecuteImmediateSellOrder(ctx context.Context, buyerID UserID, orderID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrIOError, err)
	}
	defer tx.Rollback()

	order, err := e.getSellOrderEntry(ctx, tx, orderID)
	if err != nil {
		return fmt.Errorf("%w: immediate sell order #%d doesn't exist", ErrNotFound, orderID)
	}
	if order.orderType() != Immediate {
		return fmt.Errorf("%w: order #%d is not an immediate order", ErrConflict, orderID)
	}
	if buyerID == order.sellerID {
		return fmt.Errorf("%w: you can't buy your own items", ErrConflict)
	}

	if err := e.withdrawInner(ctx, tx, buyerID, e.fundsItemID, order.price); err != nil {
		return fmt.Errorf("%w: not enough funds to buy order #%d", ErrConflict, orderID)
	}
	if err := e.depositInner(ctx, tx, order.sellerID, e.fundsItemID, order.price); err != nil {
		return fmt.Errorf("%w: failed to credit seller: %v", ErrIOError, err)
	}
	if err := e.depositInner(ctx, tx, buyerID, order.itemID, order.quantity); err != nil {
		return fmt.Errorf("%w: failed to credit buyer: %v", ErrIOError, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sell_orders WHERE id = ?", orderID); err != nil {
		return fmt.Errorf("%w: failed to delete order: %v", ErrIOError, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", ErrIOError, err)
	}
	return nil
}

// =============================================================================
// 4.2.8 place_bid_on_auction_sell_order
// =============================================================================

// PlaceBid places a new high bid on an Auction order, refunding the prior
// bidder (if any) before escrowing the new bidder's funds.
func (e *Engine) PlaceBid(ctx context.Context, buyerID UserID, orderID int64, bid int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrIOError, err)
	}
	defer tx.Rollback()

	order, err := e.getSellOrderEntry(ctx, tx, orderID)
	if err != nil {
		return fmt.Errorf("%w: auction sell order #%d doesn't exist", ErrNotFound, orderID)
	}
	if order.orderType() != Auction {
		return fmt.Errorf("%w: order #%d is not an auction order", ErrConflict, orderID)
	}
	if buyerID == order.sellerID {
		return fmt.Errorf("%w: you can't buy your own items", ErrConflict)
	}
	if bid <= order.price {
		return fmt.Errorf("%w: bid must be higher than the current price", ErrConflict)
	}

	if order.buyerID != nil {
		if err := e.depositInner(ctx, tx, UserID(*order.buyerID), e.fundsItemID, order.price); err != nil {
			return fmt.Errorf("%w: failed to refund previous bidder: %v", ErrIOError, err)
		}
	}

	if err := e.withdrawInner(ctx, tx, buyerID, e.fundsItemID, bid); err != nil {
		return fmt.Errorf("%w: not enough funds to bid %d", ErrConflict, bid)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE sell_orders SET price = ?, buyer_id = ? WHERE id = ?",
		bid, int64(buyerID), orderID,
	); err != nil {
		return fmt.Errorf("%w: failed to update order: %v", ErrIOError, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", ErrIOError, err)
	}
	return nil
}

// =============================================================================
// 4.2.9 process_expired_sell_orders
// =============================================================================

// ProcessExpiredSellOrders settles every order whose expiration_time is at
// or before unixNow: items (and, for auctions with a bid, price funds) are
// delivered to the right recipient in one set-oriented upsert, then the
// settled rows are deleted. The listing fee is never refunded.
func (e *Engine) ProcessExpiredSellOrders(ctx context.Context, unixNow int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrIOError, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		WITH aggregated_orders AS (
		  SELECT
		    CASE
		      WHEN buyer_id IS NULL OR buyer_id = seller_id THEN seller_id
		      ELSE buyer_id
		    END as user_id,
		    item_id,
		    SUM(quantity) as total_quantity
		  FROM sell_orders
		  WHERE sell_orders.expiration_time <= ?1
		  GROUP BY user_id, item_id
		  UNION ALL
		  SELECT
		    seller_id as user_id,
		    ?2 as item_id,
		    SUM(price) as total_quantity
		  FROM sell_orders
		  WHERE sell_orders.expiration_time <= ?1 AND buyer_id IS NOT NULL AND buyer_id != seller_id
		  GROUP BY seller_id
		)
		INSERT OR REPLACE INTO user_items (user_id, item_id, quantity)
		SELECT
		  aggregated_orders.user_id,
		  aggregated_orders.item_id,
		  IFNULL(user_items.quantity, 0) + aggregated_orders.total_quantity
		FROM aggregated_orders
		LEFT JOIN user_items ON user_items.user_id = aggregated_orders.user_id
		  AND user_items.item_id = aggregated_orders.item_id`,
		unixNow, e.fundsItemID,
	); err != nil {
		return fmt.Errorf("%w: failed to settle expired orders: %v", ErrIOError, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sell_orders WHERE expiration_time <= ?", unixNow); err != nil {
		return fmt.Errorf("%w: failed to delete settled orders: %v", ErrIOError, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", ErrIOError, err)
	}
	return nil
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

func (e *Engine) getItemID(ctx context.Context, q execer, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, "SELECT id FROM items WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: no such item: %s", ErrNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: failed to look up item: %v", ErrIOError, err)
	}
	return id, nil
}

func (e *Engine) getOrCreateItemID(ctx context.Context, q execer, name string) (int64, error) {
	id, err := e.getItemID(ctx, q, name)
	if err == nil {
		return id, nil
	}
	if !IsNotFound(err) {
		return 0, err
	}
	res, err := q.ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create item: %v", ErrIOError, err)
	}
	return res.LastInsertId()
}

func (e *Engine) getUserItemQuantity(ctx context.Context, q execer, userID UserID, itemID int64) (int64, error) {
	var quantity int64
	err := q.QueryRowContext(ctx,
		"SELECT quantity FROM user_items WHERE user_id = ? AND item_id = ?",
		int64(userID), itemID,
	).Scan(&quantity)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read holding: %v", ErrIOError, err)
	}
	return quantity, nil
}

// depositInner upserts quantity into the (userID, itemID) holding. The
// caller is expected to have already validated userID exists; a foreign-key
// violation here surfaces as ErrConflict.
func (e *Engine) depositInner(ctx context.Context, q execer, userID UserID, itemID int64, quantity int64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO user_items (user_id, item_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, item_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		int64(userID), itemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return nil
}

// withdrawInner debits quantity from the (userID, itemID) holding. The
// row is deleted once it reaches zero, unless itemID is the funds item.
func (e *Engine) withdrawInner(ctx context.Context, q execer, userID UserID, itemID int64, quantity int64) error {
	current, err := e.getUserItemQuantity(ctx, q, userID, itemID)
	if err != nil {
		return err
	}
	if current < quantity {
		return fmt.Errorf("%w: not enough items to withdraw", ErrConflict)
	}

	if current > quantity || itemID == e.fundsItemID {
		_, err = q.ExecContext(ctx,
			"UPDATE user_items SET quantity = quantity - ? WHERE user_id = ? AND item_id = ?",
			quantity, int64(userID), itemID,
		)
	} else {
		_, err = q.ExecContext(ctx,
			"DELETE FROM user_items WHERE user_id = ? AND item_id = ?",
			int64(userID), itemID,
		)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to withdraw: %v", ErrIOError, err)
	}
	return nil
}

func (e *Engine) getSellOrderEntry(ctx context.Context, q execer, orderID int64) (sellOrderEntry, error) {
	var entry sellOrderEntry
	var sellerID int64
	var buyerID sql.NullInt64
	err := q.QueryRowContext(ctx, `
		SELECT seller_id, item_id, quantity, price, buyer_id
		FROM sell_orders
		WHERE id = ?`, orderID,
	).Scan(&sellerID, &entry.itemID, &entry.quantity, &entry.price, &buyerID)
	if err == sql.ErrNoRows {
		return sellOrderEntry{}, fmt.Errorf("%w: order does not exist", ErrNotFound)
	}
	if err != nil {
		return sellOrderEntry{}, fmt.Errorf("%w: failed to look up order: %v", ErrIOError, err)
	}
	entry.sellerID = UserID(sellerID)
	if buyerID.Valid {
		entry.buyerID = &buyerID.Int64
	}
	return entry, nil
}
