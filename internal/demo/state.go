package demo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jasonmoo/treeflect/node"
)

// NewGame returns the game a missing state file starts from.
func NewGame() *Game {
	g := &Game{
		Name: "Treeflect Melee",
		Stage: Stage{
			Name: "Battlefield",
			Platforms: *node.NewContextVec[Platform, *Platform](
				Platform{X: -60, Y: 0, W: 120},
				Platform{X: -40, Y: 30, W: 25, PassThrough: true},
				Platform{X: 15, Y: 30, W: 25, PassThrough: true},
			),
		},
		Fighters: *node.NewKeyedContextVec[Fighter, *Fighter](
			node.KeyValue[Fighter]{Key: "mario", Value: Fighter{Name: "Mario", Weight: 98, Gravity: 0.095, Jumps: 2}},
			node.KeyValue[Fighter]{Key: "luigi", Value: Fighter{Name: "Luigi", Weight: 100, Gravity: 0.069, Jumps: 2}},
		),
		Tags: node.Map[node.String, *node.String]{"mode": "stock"},
	}
	g.Players.Push(Player{Fighter: "mario", X: -30, Stocks: 4})
	g.Players.Push(Player{Fighter: "luigi", X: 30, Stocks: 4})
	return g
}

// Load reads a game from a JSON state file. A missing file yields NewGame.
func Load(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewGame(), nil
	}
	if err != nil {
		return nil, err
	}
	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &g, nil
}

// Save writes g to a JSON state file.
func Save(path string, g *Game) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
