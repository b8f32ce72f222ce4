package config

import "github.com/automoto/volley/damage"

// MissileConfig contains missile engine configuration
type MissileConfig struct {
	AnimationPeriod float64 // seconds between missile ticks
}

// SpaceConfig contains the default spatial index layout
type SpaceConfig struct {
	Width    int // world width in pixels
	Height   int // world height in pixels
	CellSize int // resolv cell size in pixels
	UnitSize float64
}

// CombatConfig contains combat-related configuration values
type CombatConfig struct {
	DeathFrames int // ticks a dead unit stays before removal
}

// AttackPresetConfig is a data-level attack definition. Weapon is one of
// "melee", "instant" or "missile"; the missile fields only matter for the
// latter.
type AttackPresetConfig struct {
	Weapon      string
	DamageID    string
	Element     string
	AttackType  damage.AttackType
	DamageType  damage.DamageType
	WeaponSound damage.WeaponSound

	Range      float64
	MaxTargets int

	Art           string
	Trail         string
	TrailOffsetZ  float64
	Scale         float64
	Height        float64
	Speed         float64
	CollisionSize float64

	CollisionDamage bool
	CollisionFactor float64
}

// UnitKindConfig describes a unit kind that arenas can spawn
type UnitKindConfig struct {
	Health    float64
	FlyHeight float64

	// Native attack
	AttackDamage   float64
	AttackRange    float64
	AttackCooldown int // ticks
	Ranged         bool

	// Attacks lists AttackPresets keys that replace the native attack
	Attacks []string

	// Patrol movement (0 distance = stationary)
	PatrolDistance float64
	PatrolSeconds  float64
}

// SimConfig contains simulation defaults
type SimConfig struct {
	Seed  uint64
	Arena string // embedded arena name, see assets.ArenaNames
}

// Global configuration instances
var Missile MissileConfig
var Space SpaceConfig
var Combat CombatConfig
var Sim SimConfig
var AttackPresets map[string]AttackPresetConfig
var Units map[string]UnitKindConfig

func init() {
	Missile = MissileConfig{
		AnimationPeriod: 0.03,
	}

	Space = SpaceConfig{
		Width:    1280,
		Height:   720,
		CellSize: 32,
		UnitSize: 24,
	}

	Combat = CombatConfig{
		DeathFrames: 30,
	}

	Sim = SimConfig{
		Seed:  1,
		Arena: "skirmish",
	}

	AttackPresets = map[string]AttackPresetConfig{
		"arcane_volley": {
			Weapon:          "missile",
			DamageID:        "arcane_volley",
			Element:         "arcane",
			AttackType:      damage.AttackHero,
			DamageType:      damage.DamageMagic,
			WeaponSound:     damage.SoundNone,
			Range:           600,
			MaxTargets:      3,
			Art:             "missile/arcane_bolt",
			Trail:           "missile/arcane_spark",
			TrailOffsetZ:    -8,
			Scale:           0.8,
			Height:          48,
			Speed:           900,
			CollisionSize:   40,
			CollisionDamage: true,
			CollisionFactor: 0.5,
		},
		"rifle_shot": {
			Weapon:      "instant",
			DamageID:    "rifle_shot",
			Element:     "physical",
			AttackType:  damage.AttackPierce,
			DamageType:  damage.DamageNormal,
			WeaponSound: damage.SoundNone,
		},
		"cleave": {
			Weapon:      "melee",
			DamageID:    "cleave",
			Element:     "physical",
			AttackType:  damage.AttackNormal,
			DamageType:  damage.DamageNormal,
			WeaponSound: damage.SoundMetalHeavyBash,
		},
		"frost_bolt": {
			Weapon:        "missile",
			DamageID:      "frost_bolt",
			Element:       "cold",
			AttackType:    damage.AttackMagic,
			DamageType:    damage.DamageCold,
			WeaponSound:   damage.SoundNone,
			Range:         500,
			MaxTargets:    1,
			Art:           "missile/frost_bolt",
			Scale:         1,
			Height:        32,
			Speed:         700,
			CollisionSize: 0,
		},
	}

	Units = map[string]UnitKindConfig{
		"sorceress": {
			Health:         120,
			AttackDamage:   20,
			AttackRange:    500,
			AttackCooldown: 50,
			Ranged:         true,
			Attacks:        []string{"arcane_volley"},
		},
		"rifleman": {
			Health:         140,
			AttackDamage:   16,
			AttackRange:    400,
			AttackCooldown: 40,
			Ranged:         true,
			Attacks:        []string{"rifle_shot"},
		},
		"knight": {
			Health:         260,
			AttackDamage:   24,
			AttackRange:    48,
			AttackCooldown: 45,
			Attacks:        []string{"cleave"},
			PatrolDistance: 160,
			PatrolSeconds:  3,
		},
		"lich": {
			Health:         150,
			AttackDamage:   18,
			AttackRange:    500,
			AttackCooldown: 60,
			Ranged:         true,
			Attacks:        []string{"frost_bolt", "arcane_volley"},
		},
		"footman": {
			Health:         180,
			AttackDamage:   12,
			AttackRange:    48,
			AttackCooldown: 35,
			PatrolDistance: 120,
			PatrolSeconds:  2,
		},
		"gargoyle": {
			Health:         100,
			FlyHeight:      120,
			AttackDamage:   10,
			AttackRange:    64,
			AttackCooldown: 30,
			PatrolDistance: 240,
			PatrolSeconds:  4,
		},
	}
}
