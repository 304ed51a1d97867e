// Package scenegraph is a small retained tree of transform nodes. Renderers walk the tree and
// receive each node's world matrix; nodes carry an optional Drawable payload they understand.
package scenegraph

import "github.com/go-gl/mathgl/mgl32"

// Node is one transform in the tree. Rotation is Euler angles in radians applied X, then Y,
// then Z (intrinsic XYZ), matching the usual scene-graph convention. A zero Scale means 1.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Drawable any

	parent   *Node
	children []*Node
}

// New returns a node with unit scale and no children.
func New(name string) *Node {
	return &Node{Name: name, Scale: mgl32.Vec3{1, 1, 1}}
}

// Add appends child under n and returns child for chaining. A child that already has a
// parent is moved.
func (n *Node) Add(child *Node) *Node {
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

func (n *Node) remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Local returns the node's transform relative to its parent: T * Rx * Ry * Rz * S.
func (n *Node) Local() mgl32.Mat4 {
	sx, sy, sz := n.Scale[0], n.Scale[1], n.Scale[2]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	m := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	if n.Rotation[0] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(n.Rotation[0]))
	}
	if n.Rotation[1] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(n.Rotation[1]))
	}
	if n.Rotation[2] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(n.Rotation[2]))
	}
	return m.Mul4(mgl32.Scale3D(sx, sy, sz))
}

// World returns the node's transform relative to the root of its tree.
func (n *Node) World() mgl32.Mat4 {
	m := n.Local()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Local().Mul4(m)
	}
	return m
}

// Walk visits n and its descendants depth-first, parents before children, passing each node's
// world matrix. Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(node *Node, world mgl32.Mat4) bool) {
	var parent mgl32.Mat4
	if n.parent != nil {
		parent = n.parent.World()
	} else {
		parent = mgl32.Ident4()
	}
	n.walk(parent, fn)
}

func (n *Node) walk(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4) bool) {
	world := parent.Mul4(n.Local())
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// Find returns the first node named name in n's subtree (n included), or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// Count returns the number of nodes in n's subtree, n included.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}
