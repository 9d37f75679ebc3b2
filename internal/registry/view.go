package registry

// View mirrors one node of the receiver's scene graph (§3). All fields
// are the in-memory shadow the session's state-elision logic compares
// against before emitting a mutation command.
type View struct {
	ID       uint32
	ParentID uint32
	IsRoot   bool

	X, Y, W, H int32
	Visible    bool
	Painting   bool

	Transparency float32
	ScaleX       float32
	ScaleY       float32
	TransX       float32
	TransY       float32

	ResourceID    uint32
	ResourceFlags int32
	HasResource   bool

	Children []uint32
}
