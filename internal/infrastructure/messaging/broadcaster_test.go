package messaging

import (
	"strings"
	"testing"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/engagement"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
)

func newBroadcaster(t *testing.T) *SSEBroadcaster {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	logger, err := logging.NewChanneledLogger(cfg)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return NewSSEBroadcaster(logger)
}

func TestBroadcastShowMessage_FrameFormat(t *testing.T) {
	b := newBroadcaster(t)
	ch := b.AddClientWithSession("sess-show")
	defer b.RemoveClientWithSession(ch, "sess-show")

	def := engagement.MessageDefinition{
		Key:  engagement.KeyWelcome,
		Text: "Hello",
		Buttons: []engagement.ActionButton{
			{Label: "Go", Action: engagement.ActionNavigate, Target: "#fleet", Primary: true},
		},
	}
	b.BroadcastShowMessage("sess-show", &def)

	select {
	case frame := <-ch:
		if !strings.HasPrefix(frame, "event: message_show\ndata: ") {
			t.Fatalf("unexpected frame prefix: %q", frame)
		}
		if !strings.HasSuffix(frame, "\n\n") {
			t.Fatalf("frame not terminated: %q", frame)
		}
		if !strings.Contains(frame, `"key":"welcome"`) {
			t.Fatalf("definition missing from frame: %q", frame)
		}
	default:
		t.Fatal("no frame delivered")
	}
}

func TestBroadcastHideMessage_FrameFormat(t *testing.T) {
	b := newBroadcaster(t)
	ch := b.AddClientWithSession("sess-hide")
	defer b.RemoveClientWithSession(ch, "sess-hide")

	b.BroadcastHideMessage("sess-hide", "fleet")

	select {
	case frame := <-ch:
		if frame != "event: message_hide\ndata: {\"key\":\"fleet\"}\n\n" {
			t.Fatalf("unexpected hide frame: %q", frame)
		}
	default:
		t.Fatal("no frame delivered")
	}
}

func TestBroadcast_ScopedToSession(t *testing.T) {
	b := newBroadcaster(t)
	chA := b.AddClientWithSession("sess-a")
	chB := b.AddClientWithSession("sess-b")
	defer b.RemoveClientWithSession(chA, "sess-a")
	defer b.RemoveClientWithSession(chB, "sess-b")

	b.BroadcastHideMessage("sess-a", "welcome")

	select {
	case <-chB:
		t.Fatal("directive leaked to another session")
	default:
	}
	select {
	case <-chA:
	default:
		t.Fatal("directive not delivered to its session")
	}
}

func TestRemoveClient_DropsConnectionCount(t *testing.T) {
	b := newBroadcaster(t)
	ch1 := b.AddClientWithSession("sess-count")
	ch2 := b.AddClientWithSession("sess-count")

	if got := b.GetSessionConnectionCount("sess-count"); got != 2 {
		t.Fatalf("expected 2 connections, got %d", got)
	}
	b.RemoveClientWithSession(ch1, "sess-count")
	if got := b.GetSessionConnectionCount("sess-count"); got != 1 {
		t.Fatalf("expected 1 connection, got %d", got)
	}
	b.RemoveClientWithSession(ch2, "sess-count")
	if got := b.GetSessionConnectionCount("sess-count"); got != 0 {
		t.Fatalf("expected 0 connections, got %d", got)
	}
}
