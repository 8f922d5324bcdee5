package demo

import (
	"fmt"
	"strconv"

	"github.com/jasonmoo/treeflect/node"
)

func (g *Game) tick(args []string) string {
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Sprintf("tick: invalid frame count '%s'", args[0])
	}
	if g.Paused {
		return "Game is paused"
	}
	g.Frame += node.Uint64(n)
	return ""
}

func (f *Fighter) scale(args []string) string {
	factor, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return fmt.Sprintf("scale: invalid factor '%s'", args[0])
	}
	f.Weight *= node.Float32(factor)
	f.Gravity *= node.Float32(factor)
	return ""
}

func (p *Player) respawn(args []string) string {
	if p.Stocks == 0 {
		return "Player has no stocks left"
	}
	p.Stocks--
	p.X, p.Y, p.Damage = 0, 0, 0
	if p.Stocks == 0 {
		p.State = PlayerState{Value: &Dead{}}
	} else {
		p.State = PlayerState{Value: &Idle{}}
	}
	return ""
}

func (p *Player) move(args []string) string {
	var d [2]float64
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return fmt.Sprintf("move: invalid distance '%s'", a)
		}
		d[i] = v
	}
	p.X += node.Float32(d[0])
	p.Y += node.Float32(d[1])
	return ""
}
