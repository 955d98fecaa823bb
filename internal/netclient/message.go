package netclient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/udisondev/arenafx/internal/game/arena"
	"github.com/udisondev/arenafx/internal/game/effect"
)

// Message types on the wire.
const (
	// client -> server
	TypeDamage    = "damage"
	TypePvpDamage = "pvp_damage"
	TypeHeal      = "heal"
	TypeBuff      = "buff"
	TypeCast      = "cast"

	// server -> client
	TypeHealth        = "health"
	TypeDeath         = "death"
	TypeBuffApplied   = "buff_applied"
	TypeMana          = "mana"
	TypeHit           = "hit"
	TypeEntity        = "entity"
	TypeEntityRemoved = "entity_removed"
	TypeRespawn       = "respawn"
)

var errUnknownType = errors.New("unknown message type")

// Envelope is the JSON frame every message travels in.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DamageRequest asks the server to damage a monster.
type DamageRequest struct {
	Target  effect.EntityID `json:"target"`
	Amount  int32           `json:"amount"`
	OriginX float64         `json:"origin_x"`
	OriginY float64         `json:"origin_y"`
}

// PvpDamageRequest asks the server to damage a player.
type PvpDamageRequest struct {
	Target effect.EntityID `json:"target"`
	Amount int32           `json:"amount"`
	Skill  string          `json:"skill"`
}

// HealRequest asks the server to heal a combatant.
type HealRequest struct {
	Target effect.EntityID `json:"target"`
	Amount int32           `json:"amount"`
}

// BuffRequest asks the server to apply a buff.
type BuffRequest struct {
	Target effect.EntityID  `json:"target"`
	Grant  effect.BuffGrant `json:"grant"`
}

func encode(typ string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s payload: %w", typ, err)
	}
	data, err := json.Marshal(Envelope{Type: typ, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("marshaling %s envelope: %w", typ, err)
	}
	return data, nil
}

// decodeEvent turns an inbound frame into an arena event.
func decodeEvent(data []byte) (arena.Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	switch env.Type {
	case TypeHealth:
		return decodePayload[arena.HealthUpdate](env)
	case TypeDeath:
		return decodePayload[arena.Death](env)
	case TypeBuffApplied:
		return decodePayload[arena.BuffApplied](env)
	case TypeMana:
		return decodePayload[arena.ManaSync](env)
	case TypeHit:
		return decodePayload[arena.IncomingHit](env)
	case TypeEntity:
		return decodePayload[arena.EntityState](env)
	case TypeEntityRemoved:
		return decodePayload[arena.EntityRemoved](env)
	case TypeRespawn:
		return decodePayload[arena.Respawned](env)
	default:
		return nil, fmt.Errorf("%q: %w", env.Type, errUnknownType)
	}
}

func decodePayload[T arena.Event](env Envelope) (arena.Event, error) {
	var ev T
	if err := json.Unmarshal(env.Payload, &ev); err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", env.Type, err)
	}
	return ev, nil
}
