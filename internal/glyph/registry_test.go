package glyph

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/smazurov/glyphd/internal/led"
)

func TestRegistry_IdempotentActivation(t *testing.T) {
	once := NewRegistry(identity{})
	twice := NewRegistry(identity{})

	if !once.RecordActive(2, "k1", false) {
		t.Fatal("first RecordActive should report a change")
	}
	twice.RecordActive(2, "k1", false)
	if twice.RecordActive(2, "k1", false) {
		t.Error("repeated RecordActive should report no change")
	}

	if diff := cmp.Diff(once.Activation(), twice.Activation()); diff != "" {
		t.Errorf("activation differs (-once +twice):\n%s", diff)
	}
	if got := twice.Holders(2); got != 1 {
		t.Errorf("Holders(2) = %d, want 1", got)
	}
}

func TestRegistry_ReferenceCount(t *testing.T) {
	r := NewRegistry(identity{})
	keys := []NotificationKey{"a", "b", "c", "d"}
	for _, k := range keys {
		r.RecordActive(5, k, true)
	}

	for _, k := range keys[:len(keys)-1] {
		if r.RecordInactive(5, k) {
			t.Errorf("RecordInactive(%q) reported a change while other keys remain", k)
		}
		if diff := cmp.Diff([]int{5}, r.Activation().Pulse); diff != "" {
			t.Fatalf("zone should stay pulsing (-want +got):\n%s", diff)
		}
	}

	if !r.RecordInactive(5, keys[len(keys)-1]) {
		t.Error("removing the last key should report a change")
	}
	if act := r.Activation(); len(act.Pulse) != 0 || len(act.Static) != 0 {
		t.Errorf("activation after last removal = %+v, want empty", act)
	}
	if _, ok := r.Zones()[5]; ok {
		t.Error("empty zone should be pruned")
	}
}

func TestRegistry_UnknownRemovalIsNoop(t *testing.T) {
	r := NewRegistry(identity{})
	if r.RecordInactive(1, "never") {
		t.Error("removing from an unknown zone should report no change")
	}

	r.RecordActive(1, "k", false)
	if r.RecordInactive(1, "other") {
		t.Error("removing an unknown key should report no change")
	}
	if r.Holders(1) != 1 {
		t.Error("unknown removal must not disturb existing keys")
	}
}

func TestRegistry_TranslatedChannels(t *testing.T) {
	r := NewRegistry(led.NewTranslator(led.ModelPhone1))

	r.RecordActive(2, "k1", false)
	if diff := cmp.Diff([]int{2, 3, 4, 5}, r.Activation().Static); diff != "" {
		t.Errorf("static channels (-want +got):\n%s", diff)
	}

	r.RecordInactive(2, "k1")
	if got := r.Activation().Static; len(got) != 0 {
		t.Errorf("static after removal = %v, want empty", got)
	}
}

func TestRegistry_ModeSwitchMovesChannel(t *testing.T) {
	r := NewRegistry(identity{})
	r.RecordActive(3, "app", false)
	if !r.RecordActive(3, "contact", true) {
		t.Error("switching a channel to pulse should report a change")
	}
	want := Activation{Static: []int{}, Pulse: []int{3}}
	if diff := cmp.Diff(want, r.Activation()); diff != "" {
		t.Errorf("activation (-want +got):\n%s", diff)
	}
}

func TestRegistry_MutualExclusivity(t *testing.T) {
	r := NewRegistry(led.NewTranslator(led.ModelPhone2))
	rng := rand.New(rand.NewSource(42))
	keys := []NotificationKey{"a", "b", "c", "d", "e"}

	for i := 0; i < 2000; i++ {
		zone := ZoneID(rng.Intn(11))
		key := keys[rng.Intn(len(keys))]
		if rng.Intn(2) == 0 {
			r.RecordActive(zone, key, rng.Intn(2) == 0)
		} else {
			r.RecordInactive(zone, key)
		}

		act := r.Activation()
		static := make(map[int]bool, len(act.Static))
		for _, ch := range act.Static {
			static[ch] = true
		}
		for _, ch := range act.Pulse {
			if static[ch] {
				t.Fatalf("step %d: channel %d is both static and pulsing", i, ch)
			}
		}
	}
}

func TestRegistry_Sweep(t *testing.T) {
	r := NewRegistry(identity{})
	r.RecordActive(1, "k", false)
	r.RecordActive(4, "k", true)
	r.RecordActive(4, "other", true)

	if !r.Sweep("k") {
		t.Error("Sweep should report zone 1 cleared")
	}
	want := Activation{Static: []int{}, Pulse: []int{4}}
	if diff := cmp.Diff(want, r.Activation()); diff != "" {
		t.Errorf("activation after sweep (-want +got):\n%s", diff)
	}
	if r.Sweep("k") {
		t.Error("second Sweep should be a no-op")
	}
}
