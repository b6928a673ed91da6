// Package plugin runs Lua scripts that edit a line buffer through the commenter.
//
// Scripts see two globals: `lines`, an array of the document's lines, and
// `linecomment`, a module table:
//
//	linecomment.marker                      -- "//"
//	linecomment.comment(lines, first, last) -- 1-based, mutates lines in place
//
// When the script finishes, the contents of the global `lines` table become
// the new document.
package plugin

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	lua "github.com/yuin/gopher-lua"

	"linecomment/internal/comment"
	"linecomment/pkg/selection"
)

// ModuleName is the global name of the module table.
const ModuleName = "linecomment"

// Host executes comment scripts. Each Run gets a fresh Lua state.
type Host struct {
	logger log.Logger
}

// NewHost creates a Host. Script print() output goes to logger.
func NewHost(logger log.Logger) *Host {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Host{logger: logger}
}

// RunFile reads a script from path and runs it over lines.
func (h *Host) RunFile(ctx context.Context, path string, lines []string) ([]string, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return h.Run(ctx, path, string(script), lines)
}

// Run executes script with lines exposed as the global `lines` table and returns the resulting lines.
// The input slice is not modified.
func (h *Host) Run(ctx context.Context, name, script string, lines []string) (out []string, err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	if ctx != nil {
		L.SetContext(ctx)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic in %s: %v", name, r)
		}
	}()

	openSafeLibraries(L)
	L.SetGlobal("print", L.NewFunction(h.luaPrint(name)))
	L.SetGlobal(ModuleName, newModule(L))

	tbl := L.NewTable()
	for _, line := range lines {
		tbl.Append(lua.LString(line))
	}
	L.SetGlobal("lines", tbl)

	fn, err := L.Load(strings.NewReader(script), name)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("script %s failed: %w", name, err)
	}

	result, ok := L.GetGlobal("lines").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("script %s: global lines is %s, want table", name, L.GetGlobal("lines").Type())
	}
	return tableLines(result)
}

// openSafeLibraries opens base, table, string and math. io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func newModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "marker", lua.LString(comment.Marker))
	L.SetField(mod, "comment", L.NewFunction(luaComment))
	return mod
}

// luaComment implements linecomment.comment(lines, first [, last]).
func luaComment(L *lua.LState) int {
	tbl := L.CheckTable(1)
	first := L.CheckInt(2)
	last := L.OptInt(3, first)

	sel := selection.NewRange(first-1, last-1)
	for _, i := range comment.Boundaries(sel) {
		if i < 0 || i >= tbl.Len() {
			continue
		}
		if v := tbl.RawGetInt(i + 1); !isLine(v) {
			L.ArgError(1, fmt.Sprintf("lines[%d] is %s, want string", i+1, v.Type()))
			return 0
		}
	}
	comment.Comment(tableBuffer{tbl}, sel)
	return 0
}

func isLine(v lua.LValue) bool {
	return v.Type() == lua.LTString || v.Type() == lua.LTNumber
}

func (h *Host) luaPrint(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		level.Info(h.logger).Log("msg", strings.Join(parts, "\t"), "script", name)
		return 0
	}
}

// tableBuffer exposes a Lua array table as a 0-based LineBuffer.
type tableBuffer struct {
	tbl *lua.LTable
}

func (b tableBuffer) Len() int          { return b.tbl.Len() }
func (b tableBuffer) Line(i int) string { return lua.LVAsString(b.tbl.RawGetInt(i + 1)) }
func (b tableBuffer) SetLine(i int, s string) {
	b.tbl.RawSetInt(i+1, lua.LString(s))
}

func tableLines(tbl *lua.LTable) ([]string, error) {
	n := tbl.Len()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		v := tbl.RawGetInt(i)
		if !isLine(v) {
			return nil, fmt.Errorf("lines[%d] is %s, want string", i, v.Type())
		}
		out = append(out, lua.LVAsString(v))
	}
	return out, nil
}
