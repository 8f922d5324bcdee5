package badvariant

//treeflect:variant enum=Missing
type Orphan struct{}
