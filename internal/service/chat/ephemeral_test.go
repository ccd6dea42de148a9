package chat

import (
	"fmt"
	"sync"
	"testing"

	"vitalchat/internal/domain/models"
)

func TestEphemeralRoundTrip(t *testing.T) {
	store := NewEphemeralStore()

	store.Append("s1", models.ChatTypeGeneral, "m1", "r1")
	store.Append("s1", models.ChatTypeGeneral, "m2", "r2")
	store.Append("s1", models.ChatTypeGeneral, "m3", "r3")

	turns := store.Turns("s1")
	if len(turns) != 3 {
		t.Fatalf("Turns length = %d, want 3", len(turns))
	}
	for i, wantMsg := range []string{"m1", "m2", "m3"} {
		if turns[i].Message != wantMsg {
			t.Errorf("turn %d message = %q, want %q (insertion order)", i, turns[i].Message, wantMsg)
		}
	}
}

func TestEphemeralSessionIsolation(t *testing.T) {
	store := NewEphemeralStore()
	store.Append("s1", models.ChatTypeGeneral, "m1", "r1")

	if got := store.Turns("other"); len(got) != 0 {
		t.Errorf("unknown session returned %d turns, want 0", len(got))
	}
}

func TestEphemeralReadIsACopy(t *testing.T) {
	store := NewEphemeralStore()
	store.Append("s1", models.ChatTypeGeneral, "m1", "r1")

	turns := store.Turns("s1")
	turns[0].Message = "mutated"

	if store.Turns("s1")[0].Message != "m1" {
		t.Error("mutating the returned slice changed stored history")
	}
}

func TestEphemeralConcurrentAppendsSameSession(t *testing.T) {
	store := NewEphemeralStore()

	const writers = 16
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				store.Append("shared", models.ChatTypeGeneral, fmt.Sprintf("m-%d-%d", w, i), "r")
			}
		}(w)
	}
	wg.Wait()

	if got := store.Len("shared"); got != writers*perWriter {
		t.Errorf("Len = %d, want %d (lost appends)", got, writers*perWriter)
	}
}
