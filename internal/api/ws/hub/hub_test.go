package hub

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"bingo-service/domain"
	"bingo-service/internal/coordinator"

	"github.com/google/uuid"
)

type mirrorCall struct {
	roomCode string
	event    string
}

type fakeMirror struct {
	calls []mirrorCall
}

func (m *fakeMirror) Publish(ctx context.Context, roomCode, event string, payload interface{}) {
	m.calls = append(m.calls, mirrorCall{roomCode: roomCode, event: event})
}

func newTestHub(mirror Mirror) *Hub {
	coord := coordinator.NewCoordinator(coordinator.NewRegistry(6, rand.New(rand.NewSource(1))))
	return NewHub(coord, mirror)
}

func addClient(h *Hub) *domain.Client {
	client := &domain.Client{
		ID:   uuid.New(),
		Send: make(chan []byte, 16),
	}
	h.registerClient(client)
	return client
}

func intPtr(n int) *int {
	return &n
}

func envelope(t *testing.T, eventType string, content interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(domain.Envelope{Type: eventType, Content: content})
	if err != nil {
		t.Fatalf("Failed to marshal envelope: %v", err)
	}
	return raw
}

func drain(client *domain.Client) []domain.Envelope {
	var out []domain.Envelope
	for {
		select {
		case raw := <-client.Send:
			var env domain.Envelope
			if err := json.Unmarshal(raw, &env); err == nil {
				out = append(out, env)
			}
		default:
			return out
		}
	}
}

func eventTypes(envs []domain.Envelope) []string {
	names := make([]string, len(envs))
	for i, e := range envs {
		names[i] = e.Type
	}
	return names
}

func TestDispatch_CreateRoom(t *testing.T) {
	h := newTestHub(nil)
	client := addClient(h)

	raw := envelope(t, domain.EventCreateRoom, domain.CreateRoomPayload{PlayerName: "Alice", MaxPlayers: intPtr(3)})
	directives := h.dispatch(client, raw)

	found := false
	for _, d := range directives {
		if d.Event == domain.EventRoomCreated {
			found = true
			if len(d.To) != 1 || d.To[0] != client.ID {
				t.Fatalf("roomCreated must target the creator, got %v", d.To)
			}
		}
	}
	if !found {
		t.Fatal("Expected a roomCreated directive")
	}
}

func TestDispatch_CreateRoomDefaultsAbsentMaxPlayers(t *testing.T) {
	h := newTestHub(nil)
	client := addClient(h)

	// No maxPlayers field at all: the room opens at the largest size.
	// An explicit zero still clamps up to the minimum instead.
	directives := h.dispatch(client, []byte(`{"type":"createRoom","content":{"playerName":"Alice"}}`))

	found := false
	for _, d := range directives {
		if d.Event == domain.EventPlayersList {
			found = true
			if got := d.Payload.(domain.PlayersListPayload).MaxPlayers; got != domain.RoomMaxPlayers {
				t.Fatalf("Absent maxPlayers must default to %d, got %d", domain.RoomMaxPlayers, got)
			}
		}
	}
	if !found {
		t.Fatal("Expected a playersList directive")
	}

	other := addClient(h)
	directives = h.dispatch(other, []byte(`{"type":"createRoom","content":{"playerName":"Bob","maxPlayers":0}}`))
	for _, d := range directives {
		if d.Event == domain.EventPlayersList {
			if got := d.Payload.(domain.PlayersListPayload).MaxPlayers; got != domain.RoomMinPlayers {
				t.Fatalf("Explicit zero must clamp to %d, got %d", domain.RoomMinPlayers, got)
			}
		}
	}
}

func TestDispatch_MalformedInputIsNoOp(t *testing.T) {
	h := newTestHub(nil)
	client := addClient(h)

	cases := [][]byte{
		[]byte("not json"),
		[]byte(`{"type":"createRoom","content":"not an object"}`),
		[]byte(`{"type":"someUnknownEvent","content":{}}`),
		[]byte(`{}`),
	}
	for _, raw := range cases {
		if out := h.dispatch(client, raw); out != nil {
			t.Fatalf("Input %q must be a no-op, got %d directives", raw, len(out))
		}
	}
}

func TestDeliver_FansOutToTargets(t *testing.T) {
	h := newTestHub(nil)
	alice := addClient(h)
	bob := addClient(h)
	carol := addClient(h)

	h.deliver([]coordinator.Directive{{
		Event:   domain.EventGameStarted,
		Payload: struct{}{},
		To:      []uuid.UUID{alice.ID, bob.ID},
	}})

	for _, c := range []*domain.Client{alice, bob} {
		envs := drain(c)
		if len(envs) != 1 || envs[0].Type != domain.EventGameStarted {
			t.Fatalf("Expected one gameStarted envelope, got %v", eventTypes(envs))
		}
	}
	if envs := drain(carol); len(envs) != 0 {
		t.Fatalf("Carol was not a target, got %v", eventTypes(envs))
	}
}

func TestDeliver_FullSendChannelDoesNotBlock(t *testing.T) {
	h := newTestHub(nil)
	stuck := &domain.Client{ID: uuid.New(), Send: make(chan []byte)}
	h.registerClient(stuck)
	healthy := addClient(h)

	h.deliver([]coordinator.Directive{{
		Event:   domain.EventGameStarted,
		Payload: struct{}{},
		To:      []uuid.UUID{stuck.ID, healthy.ID},
	}})

	if envs := drain(healthy); len(envs) != 1 {
		t.Fatalf("Healthy client must still receive, got %v", eventTypes(envs))
	}
}

func TestDeliver_MirrorsRoomBroadcastsOnly(t *testing.T) {
	mirror := &fakeMirror{}
	h := newTestHub(mirror)
	alice := addClient(h)

	h.deliver([]coordinator.Directive{
		{
			Event:     domain.EventPlayersList,
			Payload:   domain.PlayersListPayload{},
			To:        []uuid.UUID{alice.ID},
			Room:      "ABC123",
			Broadcast: true,
		},
		{
			Event:   domain.EventRoomCreated,
			Payload: domain.RoomCreatedPayload{RoomCode: "ABC123"},
			To:      []uuid.UUID{alice.ID},
		},
	})

	if len(mirror.calls) != 1 {
		t.Fatalf("Expected exactly one mirrored event, got %d", len(mirror.calls))
	}
	if mirror.calls[0] != (mirrorCall{roomCode: "ABC123", event: domain.EventPlayersList}) {
		t.Fatalf("Unexpected mirrored call %+v", mirror.calls[0])
	}
}

func TestFullFlow_CreateJoinAutoStart(t *testing.T) {
	h := newTestHub(nil)
	alice := addClient(h)
	bob := addClient(h)

	h.deliver(h.dispatch(alice, envelope(t, domain.EventCreateRoom,
		domain.CreateRoomPayload{PlayerName: "Alice", MaxPlayers: intPtr(2)})))

	var code string
	for _, env := range drain(alice) {
		if env.Type == domain.EventRoomCreated {
			content := env.Content.(map[string]interface{})
			code = content["roomCode"].(string)
		}
	}
	if code == "" {
		t.Fatal("Alice never received her room code")
	}

	h.deliver(h.dispatch(bob, envelope(t, domain.EventJoinRoom,
		domain.JoinRoomPayload{PlayerName: "Bob", RoomCode: code})))

	bobEvents := drain(bob)
	want := map[string]bool{
		domain.EventJoinedRoom:  false,
		domain.EventGameStarted: false,
		domain.EventTurnUpdate:  false,
	}
	for _, env := range bobEvents {
		if _, ok := want[env.Type]; ok {
			want[env.Type] = true
		}
		if env.Type == domain.EventTurnUpdate {
			content := env.Content.(map[string]interface{})
			if content["playerName"] != "Alice" {
				t.Fatalf("First turn must belong to Alice, got %v", content["playerName"])
			}
		}
	}
	for event, seen := range want {
		if !seen {
			t.Fatalf("Bob never received %q; got %v", event, eventTypes(bobEvents))
		}
	}

	aliceEvents := drain(alice)
	if len(aliceEvents) == 0 {
		t.Fatal("Alice must see the join broadcasts too")
	}
}

func TestUnregister_RunsDisconnectCommand(t *testing.T) {
	h := newTestHub(nil)
	alice := addClient(h)
	bob := addClient(h)

	h.deliver(h.dispatch(alice, envelope(t, domain.EventCreateRoom,
		domain.CreateRoomPayload{PlayerName: "Alice", MaxPlayers: intPtr(3)})))

	var code string
	for _, env := range drain(alice) {
		if env.Type == domain.EventRoomCreated {
			code = env.Content.(map[string]interface{})["roomCode"].(string)
		}
	}

	h.deliver(h.dispatch(bob, envelope(t, domain.EventJoinRoom,
		domain.JoinRoomPayload{PlayerName: "Bob", RoomCode: code})))
	drain(bob)

	h.unregisterClient(alice)

	if h.ClientCount() != 1 {
		t.Fatalf("Expected 1 client left, got %d", h.ClientCount())
	}

	envs := drain(bob)
	sawRoster := false
	for _, env := range envs {
		if env.Type == domain.EventPlayersList {
			sawRoster = true
			players := env.Content.(map[string]interface{})["players"].([]interface{})
			if len(players) != 1 {
				t.Fatalf("Expected Bob alone, got %d players", len(players))
			}
			p := players[0].(map[string]interface{})
			if p["name"] != "Bob" || p["isHost"] != true {
				t.Fatalf("Bob must inherit the host flag, got %v", p)
			}
		}
	}
	if !sawRoster {
		t.Fatalf("Bob never saw the roster update; got %v", eventTypes(envs))
	}
}

func TestRelease_DoesNotBlockAfterShutdown(t *testing.T) {
	h := newTestHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	h.Run(ctx)
	cancel()

	client := &domain.Client{
		ID:   uuid.New(),
		Send: make(chan []byte, 1),
		Done: make(chan struct{}),
	}

	released := make(chan struct{})
	go func() {
		h.release(client)
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("release blocked after hub shutdown")
	}
}

func TestUnregister_IsIdempotent(t *testing.T) {
	h := newTestHub(nil)
	client := addClient(h)

	h.unregisterClient(client)
	h.unregisterClient(client)

	if h.ClientCount() != 0 {
		t.Fatalf("Expected no clients, got %d", h.ClientCount())
	}
}
