package msa

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a guide tree node. Leaves carry the index of an input sequence;
// internal nodes carry the order in which they were merged.
type Node struct {
	ID     int     `json:"id"`
	Left   *Node   `json:"left,omitempty"`
	Right  *Node   `json:"right,omitempty"`
	Height float64 `json:"height"`
	Size   int     `json:"size"`
	// Order is the 0-based merge step, or -1 for leaves.
	Order int `json:"order"`
}

// IsLeaf reports whether n is an input sequence.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// GuideTree is a rooted binary merge order over N sequences.
type GuideTree struct {
	Root   *Node
	Leaves int
	// Merges lists internal nodes in merge order.
	Merges []*Node
}

// BuildGuideTree clusters by average linkage (UPGMA) over a symmetric
// distance matrix. At equal distances the pair with the lowest cluster ids
// merges first; leaves have ids 0..N-1 and merged clusters N, N+1, ...
func BuildGuideTree(dist [][]float64) (*GuideTree, error) {
	n := len(dist)
	if n < 2 {
		return nil, fmt.Errorf("guide tree needs at least 2 sequences, got %d", n)
	}
	for i, row := range dist {
		if len(row) != n {
			return nil, fmt.Errorf("distance row %d has %d entries, want %d", i, len(row), n)
		}
	}

	total := 2*n - 1
	d := make([][]float64, total)
	for i := range d {
		d[i] = make([]float64, total)
	}
	for i := 0; i < n; i++ {
		copy(d[i], dist[i])
	}

	nodes := make([]*Node, total)
	active := make([]int, n)
	for i := 0; i < n; i++ {
		nodes[i] = &Node{ID: i, Size: 1, Order: -1}
		active[i] = i
	}

	tree := &GuideTree{Leaves: n}
	for step := 0; len(active) > 1; step++ {
		ai, bi := 0, 1
		best := d[active[0]][active[1]]
		for x := 0; x < len(active); x++ {
			for y := x + 1; y < len(active); y++ {
				if v := d[active[x]][active[y]]; v < best {
					best, ai, bi = v, x, y
				}
			}
		}

		a, b := nodes[active[ai]], nodes[active[bi]]
		id := n + step
		merged := &Node{ID: id, Left: a, Right: b, Height: best / 2, Size: a.Size + b.Size, Order: step}
		nodes[id] = merged
		tree.Merges = append(tree.Merges, merged)

		for _, k := range active {
			if k == a.ID || k == b.ID {
				continue
			}
			v := (float64(a.Size)*d[a.ID][k] + float64(b.Size)*d[b.ID][k]) / float64(merged.Size)
			d[id][k], d[k][id] = v, v
		}

		next := active[:0:0]
		for _, k := range active {
			if k != a.ID && k != b.ID {
				next = append(next, k)
			}
		}
		active = append(next, id)
	}

	tree.Root = nodes[active[0]]
	return tree, nil
}

// LeafOrder returns the leaf indices in left-to-right tree order.
func (t *GuideTree) LeafOrder() []int {
	order := make([]int, 0, t.Leaves)
	var walk func(*Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			order = append(order, n.ID)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(t.Root)
	return order
}

// Newick renders the tree with branch lengths. names, when it has one entry
// per leaf, replaces the numeric leaf labels.
func (t *GuideTree) Newick(names []string) string {
	var b strings.Builder
	var walk func(n *Node, parentHeight float64)
	walk = func(n *Node, parentHeight float64) {
		if n.IsLeaf() {
			if len(names) == t.Leaves {
				b.WriteString(newickLabel(names[n.ID]))
			} else {
				b.WriteString(strconv.Itoa(n.ID))
			}
		} else {
			b.WriteByte('(')
			walk(n.Left, n.Height)
			b.WriteByte(',')
			walk(n.Right, n.Height)
			b.WriteByte(')')
		}
		if n != t.Root {
			b.WriteByte(':')
			b.WriteString(strconv.FormatFloat(parentHeight-n.Height, 'f', -1, 64))
		}
	}
	walk(t.Root, t.Root.Height)
	b.WriteByte(';')
	return b.String()
}

func newickLabel(s string) string {
	if strings.ContainsAny(s, " ():;,'[]") {
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return s
}
