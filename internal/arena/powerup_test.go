package arena

import (
	"math"
	"testing"
)

func TestPowerupPickupAppliesAndConsumes(t *testing.T) {
	h := NewSimHarness(
		WithHumans(2),
		WithBots(0),
		WithNoObstacles(),
		WithTankAt(0, 400, 400),
		WithTankAt(1, 900, 400),
		WithTankHealth(0, 10),
		WithPowerupAt(400, 400, PowerupHealth),
	)
	h.Step()

	tank := h.M.Tanks[0]
	if tank.Health != 10+powerupHealAmount {
		t.Errorf("health after heal = %d, want %d", tank.Health, 10+powerupHealAmount)
	}
	if tank.Stats.PowerupsCollected != 1 {
		t.Errorf("PowerupsCollected = %d, want 1", tank.Stats.PowerupsCollected)
	}
	if len(h.M.Powerups) != 0 {
		t.Error("collected powerup was not pruned")
	}
	if got := len(h.Log.Filter("cue", "powerUp")); got != 1 {
		t.Errorf("powerUp cues = %d, want 1", got)
	}
}

func TestHealNeverExceedsMaxHealth(t *testing.T) {
	h := NewSimHarness(
		WithHumans(2),
		WithBots(0),
		WithNoObstacles(),
		WithTankAt(0, 400, 400),
		WithTankAt(1, 900, 400),
		WithTankHealth(0, tankMaxHealth-3),
		WithPowerupAt(400, 400, PowerupHealth),
	)
	h.Step()
	if got := h.M.Tanks[0].Health; got != tankMaxHealth {
		t.Errorf("health = %d, want clamped to %d", got, tankMaxHealth)
	}
}

// --- Stack policies ---

func TestOffensiveEffectsStack(t *testing.T) {
	h := NewSimHarness(WithHumans(2), WithBots(0))
	tank := h.M.Tanks[0]

	h.M.applyPowerup(tank, PowerupSpeed)
	h.M.applyPowerup(tank, PowerupSpeed)
	if got := tank.StackCount(EffectSpeed); got != 2 {
		t.Fatalf("speed stacks = %d, want 2", got)
	}
	want := tankBaseSpeed * speedStackMultiplier * speedStackMultiplier
	if math.Abs(tank.Speed()-want) > 1e-9 {
		t.Errorf("speed = %.2f, want %.2f (multiplicative stacking)", tank.Speed(), want)
	}

	h.M.applyPowerup(tank, PowerupRapidFire)
	h.M.applyPowerup(tank, PowerupRapidFire)
	wantCd := fireCooldownMs / (rapidFireMultiplier * rapidFireMultiplier)
	if math.Abs(tank.fireCooldown()-wantCd) > 1e-9 {
		t.Errorf("cooldown = %.2f, want %.2f", tank.fireCooldown(), wantCd)
	}
}

func TestDefensiveEffectsExtendInsteadOfStacking(t *testing.T) {
	h := NewSimHarness(WithHumans(2), WithBots(0))
	tank := h.M.Tanks[0]

	h.M.applyPowerup(tank, PowerupInvincibility)
	h.M.applyPowerup(tank, PowerupInvincibility)
	if got := tank.StackCount(EffectInvincibility); got != 1 {
		t.Fatalf("invincibility stacks = %d, want 1", got)
	}
	if got := tank.stacks[EffectInvincibility][0]; got != 2*powerupDurationMs {
		t.Errorf("extended duration = %.0f, want %.0f", got, 2*powerupDurationMs)
	}

	h.M.applyPowerup(tank, PowerupBouncingBullets)
	h.M.applyPowerup(tank, PowerupBouncingBullets)
	if got := tank.StackCount(EffectBouncing); got != 1 {
		t.Errorf("bouncing stacks = %d, want 1", got)
	}
}

func TestEffectStacksExpireIndependently(t *testing.T) {
	h := NewSimHarness(
		WithHumans(2),
		WithBots(0),
		WithEffect(0, EffectSpeed, 50),
		WithEffect(0, EffectSpeed, 10000),
	)
	tank := h.M.Tanks[0]
	if got := tank.StackCount(EffectSpeed); got != 2 {
		t.Fatalf("initial stacks = %d", got)
	}
	h.RunTicks(5) // ~83ms, past the short stack only
	if got := tank.StackCount(EffectSpeed); got != 1 {
		t.Errorf("stacks after expiry = %d, want 1", got)
	}
}

func TestContestedPickupGoesToFirstTankInOrder(t *testing.T) {
	h := NewSimHarness(
		WithHumans(2),
		WithBots(0),
		WithNoObstacles(),
		WithTankAt(0, 400, 400),
		WithTankAt(1, 430, 400),
		WithPowerupAt(415, 400, PowerupSpeed),
	)
	h.Step()

	if got := h.M.Tanks[0].Stats.PowerupsCollected; got != 1 {
		t.Errorf("tank 0 collected %d, want 1", got)
	}
	if got := h.M.Tanks[1].Stats.PowerupsCollected; got != 0 {
		t.Errorf("tank 1 collected %d, want 0", got)
	}
}

func TestSpawnTimerPlacesPowerupInWindow(t *testing.T) {
	h := NewSimHarness(WithHumans(2), WithBots(0), WithSeed(3))
	// The first spawn lands between 5 and 10 seconds: 300..600 ticks.
	h.RunTicks(299)
	if len(h.M.Powerups) != 0 {
		t.Fatal("powerup spawned before the minimum interval")
	}
	h.RunTicks(302)
	if len(h.M.Powerups) == 0 {
		t.Error("no powerup spawned within the maximum interval")
	}
}

func TestWeightedRollCoversEveryType(t *testing.T) {
	h := NewSimHarness(WithHumans(2), WithBots(0), WithSeed(11))
	seen := map[PowerupType]int{}
	for i := 0; i < 2000; i++ {
		seen[h.M.rollPowerupType()]++
	}
	for pt := PowerupType(0); pt < powerupTypeCount; pt++ {
		if seen[pt] == 0 {
			t.Errorf("type %s never rolled", pt)
		}
	}
	// Spread shot (weight 4) should out-roll invincibility (weight 1).
	if seen[PowerupSpreadShot] <= seen[PowerupInvincibility] {
		t.Errorf("weights not respected: spread=%d invinc=%d",
			seen[PowerupSpreadShot], seen[PowerupInvincibility])
	}
}
