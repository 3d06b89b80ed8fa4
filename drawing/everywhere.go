package drawing

// Everywhere returns a rewrite that applies f to every node of a
// drawing, child before parent: children are rewritten first, the
// node is rebuilt with the rewritten children, then f sees the
// rebuilt node. f therefore always observes already-transformed
// subtrees. f must handle every Drawing variant.
func Everywhere(f func(Drawing) Drawing) func(Drawing) Drawing {
	var walk func(Drawing) Drawing
	walk = func(d Drawing) Drawing {
		switch n := d.(type) {
		case Fill, Outline, Text:
			return f(n)
		case Many:
			children := make([]Drawing, len(n.Children))
			for i, c := range n.Children {
				children[i] = walk(c)
			}
			return f(Many{Children: children})
		case Scaled:
			return f(Scaled{SX: n.SX, SY: n.SY, Child: walk(n.Child)})
		case Translated:
			return f(Translated{TX: n.TX, TY: n.TY, Child: walk(n.Child)})
		case Rotated:
			return f(Rotated{Angle: n.Angle, Child: walk(n.Child)})
		case Clipped:
			return f(Clipped{Shape: n.Shape, Child: walk(n.Child)})
		case Shadowed:
			return f(Shadowed{Shadow: n.Shadow, Child: walk(n.Child)})
		}
		return f(d)
	}
	return walk
}
