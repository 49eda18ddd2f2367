// Copyright 2022 Gustavo C. Viegas. All rights reserved.

//go:build !cgo && !windows && !darwin

package wsi

func init() { initDummy() }
