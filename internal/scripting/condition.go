package scripting

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// ErrNotBoolean is returned when a condition evaluates to a non-boolean value.
var ErrNotBoolean = errors.New("scripting: condition did not return a boolean")

// ConditionFunc evaluates a compiled condition with vars bound as Lua globals.
type ConditionFunc func(vars map[string]any) (bool, error)

// Evaluator compiles boolean Lua expressions.
//
// Evaluator is safe for concurrent use: compiled prototypes are immutable and every
// evaluation runs on its own sandboxed state.
type Evaluator struct {
	limit int
}

// NewEvaluator creates an Evaluator whose evaluations run at most limit opcodes.
//
// Precondition: limit <= 0 selects DefaultInstructionLimit.
func NewEvaluator(limit int) *Evaluator {
	return &Evaluator{limit: limit}
}

// CompileCondition compiles expr, a Lua expression such as
// `player.talent_tree == 1 and player.faction == "horde"`.
//
// Postcondition: Returns a ConditionFunc, or a non-nil error if expr is empty or does not parse.
func (e *Evaluator) CompileCondition(expr string) (ConditionFunc, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("scripting: empty condition")
	}
	const name = "<condition>"
	chunk, err := parse.Parse(strings.NewReader("return ("+expr+")"), name)
	if err != nil {
		return nil, fmt.Errorf("scripting: parsing condition %q: %w", expr, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("scripting: compiling condition %q: %w", expr, err)
	}

	return func(vars map[string]any) (bool, error) {
		L, cancel := NewSandboxedState(e.limit)
		defer cancel()
		defer L.Close()

		for _, k := range sortedKeys(vars) {
			L.SetGlobal(k, toLValue(L, vars[k]))
		}
		L.Push(L.NewFunctionFromProto(proto))
		if err := L.PCall(0, 1, nil); err != nil {
			return false, fmt.Errorf("scripting: evaluating condition %q: %w", expr, err)
		}
		ret := L.Get(-1)
		L.Pop(1)
		b, ok := ret.(lua.LBool)
		if !ok {
			return false, fmt.Errorf("%w: %q returned %s", ErrNotBoolean, expr, ret.Type())
		}
		return bool(b), nil
	}, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toLValue converts a Go value to its Lua counterpart. Unsupported types become their
// fmt.Sprint string.
func toLValue(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case string:
		return lua.LString(x)
	case int:
		return lua.LNumber(x)
	case int32:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case []string:
		tbl := L.NewTable()
		for _, s := range x {
			tbl.Append(lua.LString(s))
		}
		return tbl
	case map[string]any:
		tbl := L.NewTable()
		for _, k := range sortedKeys(x) {
			tbl.RawSetString(k, toLValue(L, x[k]))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprint(x))
	}
}
