// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

// Minimal WebAssembly binary encoder for building test modules.

const (
	valI32 = 0x7f

	opUnreachable = 0x00
	opCall        = 0x10
	opI32Const    = 0x41
	opI32Store8   = 0x3a
	opEnd         = 0x0b
)

type wasmFunc struct {
	export  string
	params  []byte
	results []byte
	body    []byte // instructions without the trailing end
}

type wasmData struct {
	offset int32
	bytes  []byte
}

type wasmModule struct {
	importLog    bool
	funcs        []wasmFunc
	memoryPages  uint32
	exportMemory string
	data         []wasmData
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func wasmVec(items ...[]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func wasmSection(id byte, content []byte) []byte {
	out := []byte{id}
	out = append(out, uleb(uint32(len(content)))...)
	return append(out, content...)
}

func wasmType(params, results []byte) []byte {
	out := []byte{0x60}
	out = append(out, uleb(uint32(len(params)))...)
	out = append(out, params...)
	out = append(out, uleb(uint32(len(results)))...)
	return append(out, results...)
}

// i32s encodes a sequence of i32.const instructions.
func i32s(values ...int32) []byte {
	var out []byte
	for _, v := range values {
		out = append(out, opI32Const)
		out = append(out, sleb(v)...)
	}
	return out
}

func (m wasmModule) encode() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	var types [][]byte
	funcBase := uint32(0)
	if m.importLog {
		types = append(types, wasmType([]byte{valI32, valI32, valI32}, nil))
		funcBase = 1
	}
	for _, f := range m.funcs {
		types = append(types, wasmType(f.params, f.results))
	}
	out = append(out, wasmSection(1, wasmVec(types...))...)

	if m.importLog {
		imp := append(wasmName(HostModuleName), wasmName("host_log")...)
		imp = append(imp, 0x00)
		imp = append(imp, uleb(0)...)
		out = append(out, wasmSection(2, wasmVec(imp))...)
	}

	funcTypes := make([][]byte, len(m.funcs))
	for i := range m.funcs {
		funcTypes[i] = uleb(funcBase + uint32(i))
	}
	out = append(out, wasmSection(3, wasmVec(funcTypes...))...)

	if m.memoryPages > 0 {
		limits := append([]byte{0x00}, uleb(m.memoryPages)...)
		out = append(out, wasmSection(5, wasmVec(limits))...)
	}

	var exports [][]byte
	if m.exportMemory != "" {
		exports = append(exports, append(wasmName(m.exportMemory), append([]byte{0x02}, uleb(0)...)...))
	}
	for i, f := range m.funcs {
		if f.export == "" {
			continue
		}
		exports = append(exports, append(wasmName(f.export), append([]byte{0x00}, uleb(funcBase+uint32(i))...)...))
	}
	out = append(out, wasmSection(7, wasmVec(exports...))...)

	bodies := make([][]byte, len(m.funcs))
	for i, f := range m.funcs {
		code := append([]byte{0x00}, f.body...) // no locals
		code = append(code, opEnd)
		bodies[i] = append(uleb(uint32(len(code))), code...)
	}
	out = append(out, wasmSection(10, wasmVec(bodies...))...)

	if len(m.data) > 0 {
		segs := make([][]byte, len(m.data))
		for i, d := range m.data {
			seg := []byte{0x00}
			seg = append(seg, i32s(d.offset)...)
			seg = append(seg, opEnd)
			seg = append(seg, uleb(uint32(len(d.bytes)))...)
			segs[i] = append(seg, d.bytes...)
		}
		out = append(out, wasmSection(11, wasmVec(segs...))...)
	}
	return out
}

// setupFunc returns a setup export that stores marker at address 0.
func setupFunc(marker int32) wasmFunc {
	body := i32s(0, marker)
	body = append(body, opI32Store8, 0x00, 0x00)
	return wasmFunc{export: "init_debug_hooks", body: body}
}

// frameFunc returns a frame export reporting memory[ptr:ptr+size].
func frameFunc(ptr, size int32) wasmFunc {
	return wasmFunc{export: "draw_scene", results: []byte{valI32, valI32}, body: i32s(ptr, size)}
}

// rendererModule is a well-formed compute module whose frame is the
// size-byte region at address 0, initialized to 1, 2, 3, ...
func rendererModule(size int32) wasmModule {
	pages := uint32(size)/65536 + 1
	pattern := make([]byte, min(int(size), 256))
	for i := range pattern {
		pattern[i] = byte(i + 1)
	}
	return wasmModule{
		funcs:        []wasmFunc{setupFunc(0xff), frameFunc(0, size)},
		memoryPages:  pages,
		exportMemory: "memory",
		data:         []wasmData{{offset: 0, bytes: pattern}},
	}
}
