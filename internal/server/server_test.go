package server_test

import (
	"bufio"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinkard/sundris/internal/engine"
	"github.com/kinkard/sundris/internal/server"
)

func startTestServer(t *testing.T) string {
	eng, err := engine.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	srv := server.New(eng)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	go func() {
		_ = srv.ListenAndServe(addr)
	}()
	t.Cleanup(func() { srv.Shutdown() })

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 50*time.Millisecond)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, time.Second, 10*time.Millisecond)

	return addr
}

func TestServer_GreetingLoginAndPing(t *testing.T) {
	addr := startTestServer(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	buf := make([]byte, 4096)

	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "Welcome to Sundris Auction House")

	_, err = conn.Write([]byte("alice"))
	require.NoError(t, err)
	n, err = conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "Successfully logged in as alice", string(buf[:n]))

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)
	n, err = conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(buf[:n]))
}

func TestServer_ServesNewClientAfterDisconnect(t *testing.T) {
	addr := startTestServer(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)

	reader := bufio.NewReader(conn)
	_, err = reader.ReadByte()
	require.NoError(t, err)

	conn.Close()

	// A second client should still be served fine after the first vanished.
	conn2, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn2.Close()

	buf := make([]byte, 4096)
	n, err := conn2.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "Welcome")

	_, err = conn2.Write([]byte(fmt.Sprintf("bob-%d", time.Now().UnixNano()%1000)))
	require.NoError(t, err)
	n, err = conn2.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "Successfully logged in as")
}
