// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestPoolAllocRespectsMaxContexts(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	p := NewPool(cfg, 2)

	a := p.Alloc()
	b := p.Alloc()
	if a == nil || b == nil {
		t.Fatal("expected first two allocations to succeed")
	}
	if p.Alloc() != nil {
		t.Fatal("expected third allocation to be refused")
	}
	if p.Live() != 2 {
		t.Fatalf("expected 2 live contexts, got %d", p.Live())
	}

	if err := p.Release(a); err != nil {
		t.Fatalf("release: %v", err)
	}
	if p.Live() != 1 {
		t.Fatalf("expected 1 live context after release, got %d", p.Live())
	}
	if p.Alloc() == nil {
		t.Fatal("expected a slot to be free after release")
	}
}

func TestPoolUnboundedWhenMaxContextsIsZero(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	p := NewPool(cfg, 0)
	for i := 0; i < 10; i++ {
		if p.Alloc() == nil {
			t.Fatalf("expected unbounded pool to never refuse, failed at %d", i)
		}
	}
}
