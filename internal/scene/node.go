package scene

import (
	"github.com/Faultbox/splatview/pkg/math"
	"github.com/Faultbox/splatview/pkg/splat"
)

// Node is one entry of a transform hierarchy, laid out like a glTF node.
type Node struct {
	Name        string
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
	Points      []splat.Point
	Children    []*Node
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.V3(1, 1, 1),
	}
}

// LocalMatrix returns T * R * S for the node.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.TRS(n.Translation, n.Rotation.Normalize(), n.Scale)
}

// Flatten walks the hierarchy depth first and returns the renderables of
// every node that has points, each with model matrix parent * local.
// Node points are split with threshold as in Split.
func Flatten(root *Node, parent math.Mat4, threshold int) []*Renderable {
	if root == nil {
		return nil
	}

	model := parent.Mul(root.LocalMatrix())
	var out []*Renderable
	if len(root.Points) > 0 {
		for _, r := range Split(root.Name, root.Points, threshold) {
			r.SetModelMatrix(model)
			out = append(out, r)
		}
	}
	for _, child := range root.Children {
		out = append(out, Flatten(child, model, threshold)...)
	}
	return out
}
