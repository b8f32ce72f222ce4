package protocol

import (
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDEffect   uint = 10
	SyncIDNetUnit  uint = 11
	SyncIDNetMatch uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDEffect  uint8 = 10
	InterpIDNetUnit uint8 = 11
)

// RegisterComponents registers all replicated components with necs.
// Server and clients must call it before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDEffect,
		components.EffectData{},
		components.Effect,
		esync.WithInterpFn(InterpIDEffect, components.LerpEffect),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetUnit,
		netcomponents.NetUnitData{},
		netcomponents.NetUnit,
		esync.WithInterpFn(InterpIDNetUnit, netcomponents.LerpNetUnit),
	); err != nil {
		return err
	}

	// Match counters: no interpolation
	if err := esync.RegisterComponent(
		SyncIDNetMatch,
		netcomponents.NetMatchData{},
		netcomponents.NetMatch,
	); err != nil {
		return err
	}

	return nil
}
