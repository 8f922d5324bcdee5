package novariants

//treeflect:enum
type Empty struct {
	Value emptyVariant
}

type emptyVariant interface{ isEmpty() }
