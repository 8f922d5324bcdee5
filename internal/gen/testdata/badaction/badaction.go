package badaction

import "github.com/jasonmoo/treeflect/node"

//treeflect:node
//treeflect:action name=jump func=jump args=1
type Thing struct {
	Height node.Float32 `json:"height"`
}

func (t *Thing) jump(height float32) string { return "" }
