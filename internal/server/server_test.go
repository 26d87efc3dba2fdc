package server

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/videopoker/internal/game"
	"github.com/lox/videopoker/internal/protocol"
)

type testServer struct {
	*httptest.Server
	server   *Server
	registry *Registry
}

func startTestServer(t *testing.T, cfg RegistryConfig) *testServer {
	t.Helper()
	registry := NewRegistry(rand.New(rand.NewSource(7)), quartz.NewMock(t), testLogger(), cfg)
	s := NewServer(registry, testLogger())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Stop()
		ts.Close()
	})
	return &testServer{Server: ts, server: s, registry: registry}
}

func (ts *testServer) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readRaw(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return data
}

func readSnapshot(t *testing.T, conn *websocket.Conn) protocol.Snapshot {
	t.Helper()
	data := readRaw(t, conn)
	msgType, err := protocol.PeekType(data)
	require.NoError(t, err)
	require.Equal(t, protocol.TypeSnapshot, msgType, "unexpected message: %s", data)

	var snap protocol.Snapshot
	require.NoError(t, protocol.Unmarshal(data, &snap))
	return snap
}

func readError(t *testing.T, conn *websocket.Conn) protocol.Error {
	t.Helper()
	data := readRaw(t, conn)
	var msg protocol.Error
	require.NoError(t, protocol.Unmarshal(data, &msg))
	require.Equal(t, protocol.TypeError, msg.Type, "unexpected message: %s", data)
	return msg
}

func send(t *testing.T, conn *websocket.Conn, req *protocol.Request) {
	t.Helper()
	data, err := protocol.Marshal(req)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func TestServerPlaysRound(t *testing.T) {
	ts := startTestServer(t, RegistryConfig{})
	conn := ts.dial(t, "")

	initial := readSnapshot(t, conn)
	assert.NotEmpty(t, initial.SessionID)
	assert.Equal(t, "new_game", initial.State)
	assert.Equal(t, []string{"Ts", "Js", "Qs", "Ks", "As"}, initial.Cards)
	assert.Equal(t, []bool{true, true, true, true, true}, initial.Holds)
	assert.Equal(t, "royal_flush", initial.CategoryKey)

	send(t, conn, &protocol.Request{Type: protocol.TypeDeal})
	dealt := readSnapshot(t, conn)
	assert.Equal(t, "first_deal", dealt.State)
	assert.Equal(t, 1, dealt.Round)
	assert.Len(t, dealt.Cards, 5)
	assert.Equal(t, []bool{false, false, false, false, false}, dealt.Holds)

	send(t, conn, protocol.NewHold(0))
	held := readSnapshot(t, conn)
	assert.Equal(t, []bool{true, false, false, false, false}, held.Holds)
	assert.Equal(t, dealt.Cards, held.Cards)

	send(t, conn, &protocol.Request{Type: protocol.TypeDeal})
	final := readSnapshot(t, conn)
	assert.Equal(t, "game_over", final.State)
	assert.Equal(t, dealt.Cards[0], final.Cards[0], "held card replaced")
	for i := 1; i < 5; i++ {
		assert.NotEqual(t, dealt.Cards[i], final.Cards[i], "unheld slot %d kept its card", i)
	}
}

func TestServerAdvice(t *testing.T) {
	ts := startTestServer(t, RegistryConfig{})
	conn := ts.dial(t, "")
	readSnapshot(t, conn)

	send(t, conn, &protocol.Request{Type: protocol.TypeAdvise})
	data := readRaw(t, conn)

	var advice protocol.Advice
	require.NoError(t, protocol.Unmarshal(data, &advice))
	assert.Equal(t, protocol.TypeAdvice, advice.Type)
	assert.Len(t, advice.Holds, 5)
	assert.Equal(t, "pat Royal Flush", advice.Reasoning)
}

func TestServerRequestErrors(t *testing.T) {
	ts := startTestServer(t, RegistryConfig{})
	conn := ts.dial(t, "")
	readSnapshot(t, conn)

	send(t, conn, &protocol.Request{Type: protocol.TypeHold})
	assert.Equal(t, protocol.CodeBadRequest, readError(t, conn).Code)

	send(t, conn, &protocol.Request{Type: "bet"})
	assert.Equal(t, protocol.CodeUnknownType, readError(t, conn).Code)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, protocol.CodeBadRequest, readError(t, conn).Code)

	// Out of range holds are ignored, not errors
	send(t, conn, protocol.NewHold(9))
	snap := readSnapshot(t, conn)
	assert.Equal(t, "new_game", snap.State)
}

func TestServerResumesSession(t *testing.T) {
	ts := startTestServer(t, RegistryConfig{})

	first := ts.dial(t, "")
	initial := readSnapshot(t, first)
	send(t, first, &protocol.Request{Type: protocol.TypeDeal})
	dealt := readSnapshot(t, first)
	require.NoError(t, first.Close())

	second := ts.dial(t, "?session="+initial.SessionID)
	resumed := readSnapshot(t, second)
	assert.Equal(t, initial.SessionID, resumed.SessionID)
	assert.Equal(t, "first_deal", resumed.State)
	assert.Equal(t, dealt.Cards, resumed.Cards)
	assert.Equal(t, 1, ts.registry.Len())
}

func TestServerRejectsUnknownSession(t *testing.T) {
	ts := startTestServer(t, RegistryConfig{})
	conn := ts.dial(t, "?session=does-not-exist")

	msg := readError(t, conn)
	assert.Equal(t, protocol.CodeSessionNotFound, msg.Code)

	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "connection should be closed")
}

func TestServerRejectsWhenFull(t *testing.T) {
	ts := startTestServer(t, RegistryConfig{MaxSessions: 1})
	readSnapshot(t, ts.dial(t, ""))

	conn := ts.dial(t, "")
	assert.Equal(t, protocol.CodeRegistryFull, readError(t, conn).Code)
}

func TestServerTracksConnections(t *testing.T) {
	ts := startTestServer(t, RegistryConfig{})

	conns := make([]*websocket.Conn, 3)
	for i := range conns {
		conns[i] = ts.dial(t, "")
		readSnapshot(t, conns[i])
	}
	assert.Equal(t, 3, ts.server.ConnectionCount())
	assert.Equal(t, 3, ts.registry.Len())

	require.NoError(t, conns[0].Close())
	require.Eventually(t, func() bool { return ts.server.ConnectionCount() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestHealth(t *testing.T) {
	ts := startTestServer(t, RegistryConfig{})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("deal: %w", game.ErrInsufficientDeck), protocol.CodeInsufficientDeck},
		{ErrSessionNotFound, protocol.CodeSessionNotFound},
		{ErrRegistryFull, protocol.CodeRegistryFull},
		{errors.New("other"), protocol.CodeInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, CodeFor(tt.err), tt.err.Error())
	}
}
