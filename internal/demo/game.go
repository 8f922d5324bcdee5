// Package demo is a small game state tree driven by treeflect commands.
// Dispatch code lives in treeflect_gen.go; regenerate it with
//
//	treeflect gen ./internal/demo
package demo

import (
	"github.com/jasonmoo/treeflect/node"
)

//treeflect:node
//treeflect:action name=tick func=tick args=1 help="advance the frame counter by n frames"
type Game struct {
	Name     node.String                             `json:"name"`
	Stage    Stage                                   `json:"stage"`
	Players  node.ContextVec[Player, *Player]        `json:"players"`
	Fighters node.KeyedContextVec[Fighter, *Fighter] `json:"fighters"`
	Tags     node.Map[node.String, *node.String]     `json:"tags"`
	Paused   node.Bool                               `json:"paused"`
	Frame    node.Uint64                             `json:"frame"`
}

//treeflect:node
type Stage struct {
	Name      node.String                          `json:"name"`
	Platforms node.ContextVec[Platform, *Platform] `json:"platforms"`
}

//treeflect:node
type Platform struct {
	X           node.Float32 `json:"x"`
	Y           node.Float32 `json:"y"`
	W           node.Float32 `json:"w"`
	PassThrough node.Bool    `json:"pass_through"`
}

//treeflect:node
//treeflect:action name=scale func=scale args=1 help="multiply weight and gravity by a factor"
type Fighter struct {
	Name    node.String  `json:"name"`
	Weight  node.Float32 `json:"weight"`
	Gravity node.Float32 `json:"gravity"`
	Jumps   node.Uint8   `json:"jumps"`
}

//treeflect:node
//treeflect:action name=respawn func=respawn help="lose a stock and return to the spawn point"
//treeflect:action name=move func=move args=2 help="move by dx dy"
type Player struct {
	Fighter node.String  `json:"fighter"`
	X       node.Float32 `json:"x"`
	Y       node.Float32 `json:"y"`
	Damage  node.Float32 `json:"damage"`
	Stocks  node.Uint8   `json:"stocks"`
	State   PlayerState  `json:"state"`
}

// PlayerState is what a player is currently doing.
//
//treeflect:enum
type PlayerState struct {
	Value PlayerStateVariant
}

type PlayerStateVariant interface{ isPlayerState() }

//treeflect:variant enum=PlayerState
type Idle struct{}

//treeflect:variant enum=PlayerState
type Jumping struct {
	Height    node.Float32 `json:"height"`
	Remaining node.Uint8   `json:"remaining"`
}

// Hitstun holds the frames left before the player can act.
//
//treeflect:variant enum=PlayerState tuple
type Hitstun struct {
	V0 node.Uint32
}

// Launched holds the launch angle in degrees and the speed.
//
//treeflect:variant enum=PlayerState tuple
type Launched struct {
	V0 node.Float32
	V1 node.Float32
}

//treeflect:variant enum=PlayerState
type Dead struct{}
