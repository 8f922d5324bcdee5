package badfield

//treeflect:node
type Thing struct {
	Count int `json:"count"`
}
