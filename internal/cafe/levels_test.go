package cafe

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLevelTableSanity(t *testing.T) {
	if LevelCount() == 0 {
		t.Fatal("empty level table")
	}
	for i, cfg := range Levels {
		if cfg.ID != i {
			t.Errorf("level %d has id %d", i, cfg.ID)
		}
		if cfg.QueueLen < 1 || cfg.TimeLimit < 1 {
			t.Errorf("level %d is unplayable: queue %d, time %d", i, cfg.QueueLen, cfg.TimeLimit)
		}
		total := cfg.QueueLen
		if cfg.TwoQueues {
			total *= 2
		}
		if cfg.ToClear > total {
			t.Errorf("level %d requires %d served with only %d customers", i, cfg.ToClear, total)
		}
		if cfg.MaxOrder < 1 {
			t.Errorf("level %d has max order %d", i, cfg.MaxOrder)
		}
		for _, id := range cfg.Appliances {
			if _, ok := applianceSpec(id); !ok {
				t.Errorf("level %d references unknown appliance %q", i, id)
			}
		}
	}
	if !Levels[0].Tutorial {
		t.Error("level 0 is not the tutorial")
	}
}

func TestGetLevelBounds(t *testing.T) {
	if GetLevel(-1) != nil || GetLevel(LevelCount()) != nil {
		t.Fatal("out-of-range level lookup returned a config")
	}
	if got := GetLevel(0); got == nil || got.ID != 0 {
		t.Fatal("level 0 lookup failed")
	}
}

func TestGenericLevelIsPlayable(t *testing.T) {
	cfg := GenericLevel(42)
	if cfg.ID != 42 || cfg.QueueLen < 1 || cfg.TimeLimit < 1 || cfg.ToClear > cfg.QueueLen {
		t.Fatalf("generic level unplayable: %+v", cfg)
	}
	for _, id := range cfg.Appliances {
		if _, ok := applianceSpec(id); !ok {
			t.Fatalf("generic level references unknown appliance %q", id)
		}
	}
}

func TestBuildLevelAssembly(t *testing.T) {
	ses := NewSession("test")
	rng := rand.New(rand.NewSource(1))
	tun := DefaultTuning()
	cfg := Levels[1]

	lvl := buildLevel(cfg, ses, rng, tun, log.New(io.Discard))

	// Base appliances plus one queue-front item.
	if len(lvl.items) != len(cfg.Appliances)+1 {
		t.Fatalf("%d items assembled, want %d", len(lvl.items), len(cfg.Appliances)+1)
	}
	for _, id := range cfg.Appliances {
		if lvl.item(id) == nil {
			t.Fatalf("appliance %q missing from the registry", id)
		}
	}
	if lvl.item(ItemQueueFront) == nil {
		t.Fatal("queue front item missing")
	}
	if n := len(lvl.queues.Queues()); n != 1 {
		t.Fatalf("%d lines built, want 1", n)
	}
	if lvl.queues.TotalLength() != cfg.QueueLen {
		t.Fatalf("roster %d, want %d", lvl.queues.TotalLength(), cfg.QueueLen)
	}
	if ses.Remaining() != cfg.TimeLimit {
		t.Fatalf("timer %d, want %d", ses.Remaining(), cfg.TimeLimit)
	}

	// Every menu item must be holdable.
	for _, f := range lvl.menu {
		if !lvl.actor.SetHeld(f.ID) {
			t.Fatalf("menu item %q not registered as holdable", f.ID)
		}
	}
}

func TestBuildLevelTwoQueues(t *testing.T) {
	ses := NewSession("test")
	rng := rand.New(rand.NewSource(1))
	cfg := Levels[4]
	if !cfg.TwoQueues {
		t.Fatal("level 4 should run two lines")
	}

	lvl := buildLevel(cfg, ses, rng, DefaultTuning(), log.New(io.Discard))
	if n := len(lvl.queues.Queues()); n != 2 {
		t.Fatalf("%d lines built, want 2", n)
	}
	if lvl.item(ItemQueueSecond) == nil {
		t.Fatal("second queue front item missing")
	}
	if lvl.queues.TotalLength() != 2*cfg.QueueLen {
		t.Fatalf("roster %d, want %d", lvl.queues.TotalLength(), 2*cfg.QueueLen)
	}
}

func TestBuildLevelAppliesOwnedUpgrades(t *testing.T) {
	ses := NewSession("test")
	rng := rand.New(rand.NewSource(1))
	cfg := Levels[1]

	base := buildLevel(cfg, ses, rng, DefaultTuning(), log.New(io.Discard))
	if base.item(ItemMicrowave) != nil {
		t.Fatal("microwave present without the upgrade")
	}

	ses.Own(UpgradeMicrowave)
	upgraded := buildLevel(cfg, ses, rng, DefaultTuning(), log.New(io.Discard))
	if upgraded.item(ItemMicrowave) == nil {
		t.Fatal("owned microwave upgrade not assembled")
	}
}
