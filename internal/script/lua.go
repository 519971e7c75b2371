package script

import (
	"context"
	"fmt"
	"io"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// LuaTimeout bounds a Lua script whose context has no deadline.
const LuaTimeout = 5 * time.Second

// decodeLua runs a Lua script that builds the edit list. The script sets
// the global text and calls move(i, j, k) once per operation; len()
// returns the length of the current text.
func decodeLua(ctx context.Context, source string, r io.Reader) (*Script, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, LuaTimeout)
		defer cancel()
	}

	L := newSandbox()
	defer L.Close()
	L.SetContext(ctx)

	var s Script
	L.SetGlobal("move", L.NewFunction(func(L *lua.LState) int {
		s.Ops = append(s.Ops, Op{I: L.CheckInt(1), J: L.CheckInt(2), K: L.CheckInt(3)})
		return 0
	}))
	L.SetGlobal("len", L.NewFunction(func(L *lua.LState) int {
		text, _ := L.GetGlobal("text").(lua.LString)
		L.Push(lua.LNumber(len(text)))
		return 1
	}))

	fn, err := L.Load(r, source)
	if err != nil {
		return nil, &ParseError{Source: source, Message: err.Error(), Err: err}
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &ParseError{Source: source, Message: "script interrupted", Err: ctxErr}
		}
		return nil, &ParseError{Source: source, Message: err.Error(), Err: err}
	}

	switch text := L.GetGlobal("text").(type) {
	case lua.LString:
		s.Text = string(text)
	case *lua.LNilType:
	default:
		return nil, &ParseError{Source: source, Message: fmt.Sprintf("text must be a string, got %s", text.Type())}
	}
	return &s, nil
}

// newSandbox creates a Lua state with only the base, table, string and
// math libraries, and without the functions that load code.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}
