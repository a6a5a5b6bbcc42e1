/*
main.go - Application entry point for the auction house server.

PURPOSE:
  Wires the Storage Engine, Expiration Sweeper, and Listener together and
  runs them until a shutdown signal arrives.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Open the storage engine (creates/migrates schema)
  3. Start the expiration sweeper
  4. Start the listener
  5. On SIGINT/SIGTERM: stop accepting, let in-flight sessions finish,
     stop the sweeper, close the store

COMMAND-LINE FLAGS:
  --port  TCP listen port (default: 1984)
  --db    SQLite database path (default: auction.db)
          Use ":memory:" for an ephemeral database

EXIT CODES:
  0 on clean shutdown; non-zero on bind failure or schema-open failure.

SEE ALSO:
  - internal/engine: the storage engine
  - internal/sweeper: the expiration sweeper
  - internal/server: the TCP listener
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kinkard/sundris/internal/engine"
	"github.com/kinkard/sundris/internal/server"
	"github.com/kinkard/sundris/internal/sweeper"
)

var (
	port   int
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "auctiond",
	Short: "Sundris Auction House server",
	Long: `auctiond serves the Sundris Auction House wire protocol over TCP.

It holds user balances and item holdings, accepts immediate and auction
sell orders, and settles expired listings once per second.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVar(&port, "port", 1984, "TCP listen port")
	rootCmd.Flags().StringVar(&dbPath, "db", "auction.db", `backing store path (":memory:" for ephemeral)`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.Default()

	eng, err := engine.Open(dbPath)
	if err != nil {
		logger.Error("failed to open storage engine", "db", dbPath, "err", err)
		return err
	}
	defer eng.Close()

	sw := sweeper.New(eng, time.Second)
	sw.Start()
	defer sw.Stop()

	srv := server.New(eng)

	addr := fmt.Sprintf("localhost:%d", port)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("listener failed", "err", err)
			return err
		}
	case <-quit:
		logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.Error("error during shutdown", "err", err)
			return err
		}
		<-serveErr
	}

	logger.Info("stopped")
	return nil
}
