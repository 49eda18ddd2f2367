// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

func initDummy() {
	newWindow = newWindowDummy
	platform = None
}

func newWindowDummy(int, int, string) (Window, error) {
	return nil, ErrMissing
}
