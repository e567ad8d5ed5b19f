package followup

import (
	"math/rand"
	"strings"
	"sync"
	"testing"
)

func TestShouldFollowUp_DepthCap(t *testing.T) {
	// Any input is ignored once the depth cap is reached.
	inputs := []string{
		"",
		"ok",
		strings.Repeat("maybe i think i guess ", 20),
	}
	for _, text := range inputs {
		if ShouldFollowUp(text, 2) {
			t.Errorf("ShouldFollowUp(%q, 2) = true, want false", text)
		}
		if ShouldFollowUp(text, 3) {
			t.Errorf("ShouldFollowUp(%q, 3) = true, want false", text)
		}
	}
}

func TestShouldFollowUp_ShortAnswer(t *testing.T) {
	if !ShouldFollowUp("ok", 0) {
		t.Error("two-word answer should trigger a follow-up")
	}
	if !ShouldFollowUp("I worked on the payments team", 1) {
		t.Error("short answer at depth 1 should trigger a follow-up")
	}
}

func TestShouldFollowUp_SubstantiveAnswer(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 40))
	if ShouldFollowUp(text, 0) {
		t.Error("40 plain words should not trigger a follow-up")
	}
}

func TestShouldFollowUp_HedgingLanguage(t *testing.T) {
	base := strings.TrimSpace(strings.Repeat("word ", 35))

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"one hedge", base + " I think that went well", false},
		{"two distinct hedges", base + " I think it was maybe the right call", true},
		{"same hedge repeated", base + " maybe yes maybe no maybe", false},
		{"case insensitive", base + " I THINK it was MAYBE fine", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldFollowUp(tt.text, 0); got != tt.want {
				t.Errorf("ShouldFollowUp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPicker_Deterministic(t *testing.T) {
	a := NewPicker(nil, rand.New(rand.NewSource(42)))
	b := NewPicker(nil, rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		if pa, pb := a.Pick(), b.Pick(); pa != pb {
			t.Fatalf("seeded pickers diverged at pick %d: %q vs %q", i, pa, pb)
		}
	}
}

func TestPicker_PoolMembership(t *testing.T) {
	pool := []string{"one", "two", "three"}
	p := NewPicker(pool, rand.New(rand.NewSource(1)))

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[p.Pick()] = true
	}
	for _, prompt := range pool {
		if !seen[prompt] {
			t.Errorf("prompt %q never selected over 100 picks", prompt)
		}
	}
	if len(seen) != len(pool) {
		t.Errorf("picker produced %d distinct prompts, want %d", len(seen), len(pool))
	}
}

// Exercised with -race: one Picker serves all sessions, so concurrent picks
// must not corrupt the shared randomness source.
func TestPicker_ConcurrentPicks(t *testing.T) {
	p := NewPicker(nil, rand.New(rand.NewSource(7)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if p.Pick() == "" {
					t.Error("Pick returned empty prompt")
					return
				}
			}
		}()
	}
	wg.Wait()
}
