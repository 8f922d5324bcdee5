package arena

import "github.com/jasonmoo/treeflect/node"

//treeflect:node name=Arena
type crate struct {
	Label   node.String `json:"label,omitempty"`
	Weight  node.Uint16
	Ignored node.Bool `json:"-"`
	Hidden  node.Bool `treeflect:"-"`
	Mode    Mode      `json:"mode"`

	secret int
}

//treeflect:action name=open func=open help="open the crate"
//treeflect:node
type Round struct {
	Number node.Int32 `json:"number"`
}

func (c *crate) open(args []string) string { return "opened" }

func (n *Round) open(args []string) string { return "" }

//treeflect:enum
type Mode struct {
	Current modeVariant
}

type modeVariant interface{ isMode() }

//treeflect:variant enum=Mode name=Stock
type stock struct{}

//treeflect:variant enum=Mode name=Time
type timed struct{}

// A type without directives is ignored.
type plain struct {
	N int
}
