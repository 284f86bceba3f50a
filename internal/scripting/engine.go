package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// Engine wraps a single gopher-lua VM for game rules.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory: core/ first, then rules/. Missing subdirectories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"core", "rules"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunction reports whether a global Lua function with the given name exists.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// TrainDuration calls Lua train_duration(unit_name, ticks_per_second).
// ok is false when the function is missing, fails, or returns a non-number.
func (e *Engine) TrainDuration(unitName string, ticksPerSecond int) (ticks int, ok bool) {
	if !e.HasFunction("train_duration") {
		return 0, false
	}
	fn := e.vm.GetGlobal("train_duration")

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(unitName), lua.LNumber(ticksPerSecond)); err != nil {
		e.log.Error("lua train_duration error", zap.Error(err), zap.String("unit", unitName))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, isNum := result.(lua.LNumber)
	if !isNum {
		if result != lua.LNil {
			e.log.Error("lua train_duration returned non-number",
				zap.String("unit", unitName), zap.String("type", result.Type().String()))
		}
		return 0, false
	}
	return int(n), true
}

// callIntFunc calls a global Lua function with integer args and returns one
// integer. Missing functions and Lua errors are logged and yield def.
func (e *Engine) callIntFunc(name string, def int, args ...int) int {
	if !e.HasFunction(name) {
		return def
	}
	fn := e.vm.GetGlobal(name)

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return def
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	if n, ok := result.(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// QueueCapacity calls Lua train_queue_capacity(default) so scripts can
// tune the default training queue length. Missing function returns def.
func (e *Engine) QueueCapacity(def int) int {
	if n := e.callIntFunc("train_queue_capacity", def, def); n > 0 {
		return n
	}
	return def
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
