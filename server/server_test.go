package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sms-viewer/clock"
	"sms-viewer/registry"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var sentAt = time.Date(2026, 10, 19, 9, 5, 0, 0, time.UTC)

func newTestService(t *testing.T) *ShortMessageService {
	t.Helper()
	svc := NewShortMessageService(clock.Fake(sentAt))
	require.NoError(t, svc.AddAgent("alice", "wonderland"))
	require.NoError(t, svc.AddAgent("bob", "builder"))
	require.NoError(t, svc.AddAgent("carol", "singer"))
	return svc
}

func get(t *testing.T, base, path, user, password string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, base+path, nil)
	require.NoError(t, err)
	if user != "" {
		req.SetBasicAuth(user, password)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestShortMessageService_Send(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name      string
		recipient string
		text      string
		want      string
	}{
		{"should accept a valid message", "bob", "hello", StatusSent},
		{"should require a recipient", "", "hello", StatusNoRecipient},
		{"should reject an unknown recipient", "dave", "hello", "There exists no agent for 'dave'!"},
		{"should reject an empty message", "bob", "", StatusEmpty},
		{"should accept exactly 140 characters", "bob", strings.Repeat("é", 140), StatusSent},
		{"should reject 141 characters", "bob", strings.Repeat("x", 141), "Message too long! (Maximum: 140)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, svc.SendShortMessage("alice", tc.recipient, tc.text))
		})
	}
}

func TestShortMessageService_Log(t *testing.T) {
	t.Run("should say so when there are no messages", func(t *testing.T) {
		require.Equal(t, NoMessages, newTestService(t).GetShortMessagesAsString("alice"))
	})

	t.Run("should list only messages the agent sent or received", func(t *testing.T) {
		req := require.New(t)
		svc := newTestService(t)

		req.Equal(StatusSent, svc.SendShortMessage("alice", "bob", "hi bob"))
		req.Equal(StatusSent, svc.SendShortMessage("carol", "bob", "not for alice"))
		req.Equal(StatusSent, svc.SendShortMessage("bob", "alice", "hi alice"))

		req.Equal(
			"10/19/26 9:05 AM from alice to bob : hi bob\n"+
				"10/19/26 9:05 AM from bob to alice : hi alice\n",
			svc.GetShortMessagesAsString("alice"))
	})
}

func TestShortMessageService_Authenticate(t *testing.T) {
	svc := newTestService(t)

	t.Run("should accept the right password", func(t *testing.T) {
		require.True(t, svc.Authenticate("alice", "wonderland"))
	})
	t.Run("should reject a wrong password", func(t *testing.T) {
		require.False(t, svc.Authenticate("alice", "looking-glass"))
	})
	t.Run("should reject an unknown agent", func(t *testing.T) {
		require.False(t, svc.Authenticate("dave", "wonderland"))
	})
}

func TestParseAgents(t *testing.T) {
	t.Run("should parse name:password pairs", func(t *testing.T) {
		req := require.New(t)
		agents, err := ParseAgents("alice:wonderland, bob:a:b,")
		req.NoError(err)
		req.Equal(map[string]string{"alice": "wonderland", "bob": "a:b"}, agents)
	})

	t.Run("should reject an entry without a password separator", func(t *testing.T) {
		_, err := ParseAgents("alice")
		require.Error(t, err)
	})
}

func TestServer_Routes(t *testing.T) {
	svc := newTestService(t)
	ts := httptest.NewServer(NewServer(svc, logs.GetLoggerFromLevel(slog.LevelDebug)).Handler())
	defer ts.Close()

	t.Run("should refuse requests without credentials", func(t *testing.T) {
		req := require.New(t)
		status, _ := get(t, ts.URL, "/getShortMessagesAsString", "", "")
		req.Equal(http.StatusUnauthorized, status)
	})

	t.Run("should refuse a wrong password", func(t *testing.T) {
		status, _ := get(t, ts.URL, "/getShortMessagesAsString", "alice", "nope")
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("should send as the authenticated agent and list the message", func(t *testing.T) {
		req := require.New(t)

		status, body := get(t, ts.URL, "/sendShortMessage/bob/hello%20there", "alice", "wonderland")
		req.Equal(http.StatusOK, status)
		req.Equal(StatusSent, body)

		status, body = get(t, ts.URL, "/getShortMessagesAsString", "bob", "builder")
		req.Equal(http.StatusOK, status)
		req.Equal("10/19/26 9:05 AM from alice to bob : hello there\n", body)
	})

	t.Run("should answer validation failures with 200 and a status line", func(t *testing.T) {
		req := require.New(t)

		status, body := get(t, ts.URL, "/sendShortMessage//hello", "alice", "wonderland")
		req.Equal(http.StatusOK, status)
		req.Equal(StatusNoRecipient, body)

		status, body = get(t, ts.URL, "/sendShortMessage/bob/", "alice", "wonderland")
		req.Equal(http.StatusOK, status)
		req.Equal(StatusEmpty, body)
	})

	t.Run("should 404 unknown operations", func(t *testing.T) {
		status, _ := get(t, ts.URL, "/getNewMessagesAsString", "alice", "wonderland")
		require.Equal(t, http.StatusNotFound, status)
	})
}

func TestServer_ServeAndShutdown(t *testing.T) {
	req := require.New(t)
	reg := registry.NewStaticRegistry()
	svr := NewServer(newTestService(t), logs.GetLoggerFromLevel(slog.LevelDebug), WithServiceName("sms-test"))

	served := make(chan error, 1)
	go func() { served <- svr.Serve("tcp", "127.0.0.1:0", "", reg) }()

	select {
	case <-svr.Ready():
	case <-time.After(2 * time.Second):
		req.Fail("server never became ready")
	}

	t.Run("should register its advertised address", func(t *testing.T) {
		instances, err := reg.Discover(context.Background(), "sms-test")
		require.NoError(t, err)
		require.Len(t, instances, 1)
		require.Equal(t, svr.Addr(), instances[0].Addr)
		require.True(t, strings.HasPrefix(svr.Addr(), "http://127.0.0.1:"))
	})

	t.Run("should serve requests", func(t *testing.T) {
		status, body := get(t, svr.Addr(), "/getShortMessagesAsString", "alice", "wonderland")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, NoMessages, body)
	})

	t.Run("should deregister and stop cleanly", func(t *testing.T) {
		req := require.New(t)
		req.NoError(svr.Shutdown(time.Second))
		req.NoError(<-served)

		instances, err := reg.Discover(context.Background(), "sms-test")
		req.NoError(err)
		req.Empty(instances)
	})
}

func TestComparePassword(t *testing.T) {
	t.Run("should round-trip a hash", func(t *testing.T) {
		req := require.New(t)
		hash, err := HashPassword("wonderland")
		req.NoError(err)
		req.True(strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"))

		ok, err := ComparePassword("wonderland", hash)
		req.NoError(err)
		req.True(ok)
	})

	t.Run("should salt every hash", func(t *testing.T) {
		req := require.New(t)
		first, err := HashPassword("wonderland")
		req.NoError(err)
		second, err := HashPassword("wonderland")
		req.NoError(err)
		req.NotEqual(first, second)
	})

	t.Run("should reject malformed hashes", func(t *testing.T) {
		_, err := ComparePassword("wonderland", "$2a$10$notargon")
		require.Error(t, err)
	})
}
