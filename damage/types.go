package damage

// AttackType classifies the attacker's weapon for armor tables.
type AttackType int

const (
	AttackNormal AttackType = iota
	AttackPierce
	AttackSiege
	AttackMagic
	AttackChaos
	AttackHero
)

// DamageType classifies how the damage is dealt (physical, elemental...).
type DamageType int

const (
	DamageNormal DamageType = iota
	DamageMagic
	DamageFire
	DamageCold
	DamageLightning
	DamagePoison
)

// WeaponSound selects the impact sound played by the host.
type WeaponSound int

const (
	SoundNone WeaponSound = iota
	SoundMetalLightChop
	SoundMetalMediumSlice
	SoundMetalHeavyBash
	SoundWoodHeavyBash
)
