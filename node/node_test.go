// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package node

import (
	"testing"

	"github.com/gviegas/globe/linear"
)

type local struct {
	m       linear.M4
	changed bool
	name    string
}

func newLocal(name string, x float32) *local {
	l := &local{name: name, changed: true}
	l.m.Translate(x, 0, 0)
	return l
}

func (l *local) Local() *linear.M4 { return &l.m }

func (l *local) Changed() (b bool) {
	b, l.changed = l.changed, false
	return
}

func TestInsert(t *testing.T) {
	var g Graph
	if g.World(1) != nil {
		t.Fatal("g.World(1) on empty graph:\nhave non-nil\nwant nil")
	}
	n1 := g.Insert(newLocal("n1", 1), Nil)
	n2 := g.Insert(newLocal("n2", 2), n1)
	n3 := g.Insert(newLocal("n3", 4), n1)
	n4 := g.Insert(newLocal("n4", 8), n3)
	n5 := g.Insert(newLocal("n5", 16), Nil)

	if n := g.Len(); n != 5 {
		t.Fatalf("g.Len\nhave %d\nwant 5", n)
	}
	seen := make(map[Node]bool)
	for _, n := range [...]Node{n1, n2, n3, n4, n5} {
		if n == Nil || seen[n] {
			t.Fatalf("g.Insert: Node %d not unique", n)
		}
		seen[n] = true
	}

	var root linear.M4
	root.I()
	g.Update(&root, false)
	for _, x := range [...]struct {
		n    Node
		want float32
	}{
		{n1, 1},
		{n2, 3},
		{n3, 5},
		{n4, 13},
		{n5, 16},
	} {
		if have := g.World(x.n)[3][0]; have != x.want {
			t.Fatalf("g.World(%d): x\nhave %v\nwant %v", x.n, have, x.want)
		}
	}
	if g.World(Nil) != nil || g.World(n5+1) != nil {
		t.Fatal("g.World: invalid Node\nhave non-nil\nwant nil")
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("g.Insert(invalid prev):\nhave no panic\nwant panic")
			}
		}()
		g.Insert(newLocal("n6", 0), n5+1)
	}()
	if n := g.Len(); n != 5 {
		t.Fatalf("g.Len after failed Insert\nhave %d\nwant 5", n)
	}
}

func TestUpdate(t *testing.T) {
	var g Graph
	l1 := newLocal("n1", 1)
	l2 := newLocal("n2", 2)
	n1 := g.Insert(l1, Nil)
	n2 := g.Insert(l2, n1)

	var root linear.M4
	root.I()
	g.Update(&root, false)
	if x := g.World(n2)[3][0]; x != 3 {
		t.Fatalf("g.World(n2): x\nhave %v\nwant 3", x)
	}

	l1.m.Translate(10, 0, 0)
	l1.changed = true
	g.Update(&root, false)
	if x := g.World(n2)[3][0]; x != 12 {
		t.Fatalf("g.World(n2): x after parent change\nhave %v\nwant 12", x)
	}

	root.Scale(2, 2, 2)
	g.Update(&root, true)
	if x := g.World(n1)[3][0]; x != 20 {
		t.Fatalf("g.World(n1): x after root change\nhave %v\nwant 20", x)
	}
	if x := g.World(n2)[3][0]; x != 24 {
		t.Fatalf("g.World(n2): x after root change\nhave %v\nwant 24", x)
	}
}
