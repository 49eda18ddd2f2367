// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package shader provides the WGSL programs used to draw
// the globe and the layout of their uniforms.
// Programs are versioned assets: they are embedded in the
// binary, can be replaced by files on disk and are compiled
// to SPIR-V when loaded, so that a broken substitute is
// rejected at startup.
package shader

import (
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gviegas/globe/internal/logger"
)

//go:embed wgsl/*.wgsl
var builtin embed.FS

// Module names.
const (
	Points = "points"
	Basic  = "basic"
)

// Versions understood by the layouts of this package.
var versions = map[string]int{
	Points: 1,
	Basic:  1,
}

// ErrNotFound means that a module is not present in a
// Library.
var ErrNotFound = errors.New("shader: module not found")

func newErr(reason string) error { return errors.New("shader: " + reason) }

// Module is a validated shader module.
type Module struct {
	Name    string
	Version int
	Source  string
}

// Library is a set of shader modules keyed by name.
type Library struct {
	mods map[string]*Module
}

// Builtin loads the embedded modules.
func Builtin() (*Library, error) { return Load(nil) }

// Load loads every module from fsys, falling back to the
// embedded source for files that fsys does not have.
// The file of a module is its name plus ".wgsl".
// fsys may be nil.
func Load(fsys fs.FS) (*Library, error) {
	lib := &Library{mods: make(map[string]*Module, len(versions))}
	for name := range versions {
		src, origin, err := readSource(fsys, name)
		if err != nil {
			return nil, err
		}
		mod, err := newModule(name, src)
		if err != nil {
			return nil, fmt.Errorf("%s (%s): %w", name, origin, err)
		}
		logger.Get().Debug("shader loaded", "name", name, "version", mod.Version, "origin", origin)
		lib.mods[name] = mod
	}
	return lib, nil
}

func readSource(fsys fs.FS, name string) (src, origin string, err error) {
	file := name + ".wgsl"
	if fsys != nil {
		b, err := fs.ReadFile(fsys, file)
		switch {
		case err == nil:
			return string(b), file, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", "", fmt.Errorf("shader: %w", err)
		}
	}
	b, err := builtin.ReadFile("wgsl/" + file)
	if err != nil {
		return "", "", fmt.Errorf("shader: %w", err)
	}
	return string(b), "builtin", nil
}

// newModule parses the header of src, checks its version
// and compiles it.
func newModule(name, src string) (*Module, error) {
	hname, version, err := parseHeader(src)
	if err != nil {
		return nil, err
	}
	if hname != name {
		return nil, newErr("header names module " + hname)
	}
	if want := versions[name]; version != want {
		return nil, newErr(fmt.Sprintf("version %d not supported (want %d)", version, want))
	}
	for _, entry := range [...]string{"fn vs_main", "fn fs_main"} {
		if !strings.Contains(src, entry) {
			return nil, newErr("missing entry point " + strings.TrimPrefix(entry, "fn "))
		}
	}
	if _, err := Compile(src); err != nil {
		return nil, err
	}
	return &Module{Name: name, Version: version, Source: src}, nil
}

// parseHeader parses the first line of a module, which
// must be of the form
//
//	// globe:<name> v<version>
func parseHeader(src string) (name string, version int, err error) {
	line, _, _ := strings.Cut(src, "\n")
	line = strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(line, "// globe:")
	if !ok {
		return "", 0, newErr("missing module header")
	}
	if _, err := fmt.Sscanf(rest, "%s v%d", &name, &version); err != nil {
		return "", 0, newErr("malformed module header: " + line)
	}
	return
}

// The first word of a SPIR-V module.
const spirvMagic = 0x07230203

// Compile compiles WGSL source to SPIR-V words.
// Modules are compiled when loaded so that invalid source
// is rejected before anything is drawn with it.
func Compile(src string) ([]uint32, error) {
	b, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}
	if len(b)%4 != 0 {
		return nil, newErr("compile: SPIR-V size not a multiple of 4")
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	if len(words) == 0 || words[0] != spirvMagic {
		return nil, newErr("compile: output is not SPIR-V")
	}
	return words, nil
}

// Module returns the module identified by name.
func (l *Library) Module(name string) (*Module, error) {
	if mod, ok := l.mods[name]; ok {
		return mod, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
