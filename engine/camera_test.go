// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/gviegas/globe/linear"
)

func TestCamera(t *testing.T) {
	cam, err := NewPerspective(45, 1.5, 1, 1000)
	if err != nil {
		t.Fatalf("NewPerspective:\nhave %v\nwant nil", err)
	}
	pos := linear.V3{1.25, 7, 17}
	cam.SetPosition(pos)
	cam.LookAt(linear.V3{})
	if cam.Position() != pos {
		t.Fatalf("cam.Position:\nhave %v\nwant %v", cam.Position(), pos)
	}
	if cam.Target() != (linear.V3{}) {
		t.Fatalf("cam.Target:\nhave %v\nwant [0 0 0]", cam.Target())
	}
	// The target projects onto the center of the view.
	var e, c linear.V4
	e.Point(cam.View(), &linear.V3{})
	c.Mul(cam.Projection(), &e)
	if x, y := c[0]/c[3], c[1]/c[3]; x*x+y*y > 1e-10 {
		t.Fatalf("target in NDC:\nhave (%v, %v)\nwant (0, 0)", x, y)
	}
	// It lies straight ahead at the camera distance.
	d := linear.V4{0, 0, -pos.Len(), 1}
	if e[0]*e[0]+e[1]*e[1] > 1e-8 || e[2]-d[2] > 1e-4 || d[2]-e[2] > 1e-4 {
		t.Fatalf("target in view space:\nhave %v\nwant %v", e, d)
	}

	cam.Aspect = 0.5
	if err := cam.UpdateProjection(); err != nil {
		t.Fatalf("cam.UpdateProjection:\nhave %v\nwant nil", err)
	}
	var want linear.M4
	want.Perspective(45*3.14159265/180, 0.5, 1, 1000)
	checkM4(t, "cam.Projection", cam.Projection(), &want)
}

func TestCameraInvalid(t *testing.T) {
	for _, x := range [...][4]float32{
		{0, 1, 1, 1000},
		{180, 1, 1, 1000},
		{45, 0, 1, 1000},
		{45, 1, 0, 1000},
		{45, 1, 10, 10},
	} {
		if c, err := NewPerspective(x[0], x[1], x[2], x[3]); err == nil || c != nil {
			t.Fatalf("NewPerspective%v:\nhave %v, %v\nwant nil, error", x, c, err)
		}
	}
	cam, err := NewPerspective(45, 1, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	cam.Aspect = -1
	if err := cam.UpdateProjection(); err == nil {
		t.Fatal("cam.UpdateProjection(Aspect = -1):\nhave nil\nwant error")
	}
}
