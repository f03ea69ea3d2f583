// Package script exposes the calendar functions to Lua scripts.
//
// Scripts see a global table idl:
//
//	idl.julday(y, m, d [, h, mi, s])  -> Julian day
//	idl.caldat(jd)                    -> y, m, d, h, mi, s
//	idl.julday_no_leap(m, d, y)       -> Julian day on the 365 day calendar
//	idl.caldat_no_leap(jd)            -> y, m, d, h, mi, s
//	idl.date{year=, month=, day=, hour=, minute=, second=}  -> Julian day
//	idl.encode(ys, ms, ds [, hs, mis, ss])  -> table of Julian days, arguments are numbers or tables
//	idl.make_time(y, m, d, h, mi, s)  -> Time userdata with Sub, Add and Date
//	idl.proleptic                     -> false, set to true for proleptic Gregorian
package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
	luar "layeh.com/gopher-luar"

	idl "github.com/SebastiaanKlippert/go-idl"
)

var log = structlog.New()

//Options of an Engine
type Options struct {
	Mode   idl.Mode  //Initial value of idl.proleptic
	Output io.Writer //Destination of print, os.Stdout when nil
}

//Engine is a Lua state with the idl table installed. It is not safe for
//concurrent use.
type Engine struct {
	L   *lua.LState
	out io.Writer
	tbl *lua.LTable
}

//dateArgs is the table accepted by idl.date
type dateArgs struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

//New returns an Engine, Close it when done
func New(opts Options) *Engine {
	e := &Engine{L: lua.NewState(), out: opts.Output}
	if e.out == nil {
		e.out = os.Stdout
	}
	L := e.L

	e.tbl = L.NewTable()
	L.SetFuncs(e.tbl, map[string]lua.LGFunction{
		"julday":         e.julday,
		"caldat":         e.caldat,
		"julday_no_leap": e.juldayNoLeap,
		"caldat_no_leap": e.caldatNoLeap,
		"date":           e.date,
		"encode":         e.encode,
	})
	e.tbl.RawSetString("proleptic", lua.LBool(opts.Mode == idl.ProlepticGregorian))
	e.tbl.RawSetString("make_time", luar.New(L, func(y, m, d, h, mi int, s float64) (idl.Time, error) {
		times, err := idl.MakeTime(idl.Scalar(float64(y)), idl.Scalar(float64(m)), idl.Scalar(float64(d)),
			idl.Scalar(float64(h)), idl.Scalar(float64(mi)), idl.Scalar(s), false)
		if err != nil {
			return idl.Time{}, err
		}
		return times[0], nil
	}))
	L.SetGlobal("idl", e.tbl)
	L.SetGlobal("print", L.NewFunction(e.print))
	return e
}

//Close releases the Lua state
func (e *Engine) Close() {
	e.L.Close()
}

//RunString executes Lua source
func (e *Engine) RunString(ctx context.Context, src string) error {
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	if err := e.L.DoString(src); err != nil {
		return merry.Prepend(err, "lua")
	}
	return nil
}

//RunFile executes a Lua file
func (e *Engine) RunFile(ctx context.Context, filename string) error {
	log.Debug("run script", "file", filename)
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	if err := e.L.DoFile(filename); err != nil {
		return merry.Prepend(err, filename)
	}
	return nil
}

func (e *Engine) mode() idl.Mode {
	if lua.LVAsBool(e.tbl.RawGetString("proleptic")) {
		return idl.ProlepticGregorian
	}
	return idl.Hybrid
}

func (e *Engine) julday(L *lua.LState) int {
	y, m, d := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
	if L.GetTop() <= 3 {
		j, err := idl.JulDay(y, m, d, e.mode())
		if err != nil {
			L.RaiseError("%s", err)
		}
		L.Push(lua.LNumber(j))
		return 1
	}
	h, mi, s := L.OptInt(4, 0), L.OptInt(5, 0), float64(L.OptNumber(6, 0))
	j, err := idl.JulDayTime(y, m, d, h, mi, s, e.mode())
	if err != nil {
		L.RaiseError("%s", err)
	}
	L.Push(lua.LNumber(j))
	return 1
}

func (e *Engine) caldat(L *lua.LState) int {
	d, err := idl.CalDat(float64(L.CheckNumber(1)), e.mode())
	if err != nil {
		L.RaiseError("%s", err)
	}
	return pushDate(L, d)
}

func (e *Engine) juldayNoLeap(L *lua.LState) int {
	m, d, y := L.CheckNumber(1), L.CheckNumber(2), L.CheckNumber(3)
	j, err := idl.EncodeNoLeap(idl.Scalar(float64(m)), idl.Scalar(float64(d)), idl.Scalar(float64(y)))
	if err != nil {
		L.RaiseError("%s", err)
	}
	L.Push(lua.LNumber(j.At(0)))
	return 1
}

func (e *Engine) caldatNoLeap(L *lua.LState) int {
	c, err := idl.DecodeNoLeap(idl.Scalar(float64(L.CheckNumber(1))))
	if err != nil {
		L.RaiseError("%s", err)
	}
	return pushDate(L, c.At(0))
}

func (e *Engine) date(L *lua.LState) int {
	var a dateArgs
	if err := gluamapper.Map(L.CheckTable(1), &a); err != nil {
		L.RaiseError("idl.date: %s", err)
	}
	j, err := idl.JulDayTime(a.Year, a.Month, a.Day, a.Hour, a.Minute, a.Second, e.mode())
	if err != nil {
		L.RaiseError("%s", err)
	}
	L.Push(lua.LNumber(j))
	return 1
}

//encode is julday over tables, the smallest table decides the result length
func (e *Engine) encode(L *lua.LState) int {
	n := L.GetTop()
	if n != 3 && n != 6 {
		L.RaiseError("idl.encode: want 3 or 6 arguments, have %d", n)
	}
	args := make([]idl.Array, n)
	for i := range args {
		a, err := idl.ToArray(gluamapper.ToGoValue(L.Get(i+1), gluamapper.Option{NameFunc: gluamapper.Id}))
		if err != nil {
			L.RaiseError("idl.encode: argument %d: %s", i+1, err)
		}
		args[i] = a
	}
	var res idl.Array
	var err error
	if n == 3 {
		res, err = idl.Encode(args[0], args[1], args[2], e.mode())
	} else {
		res, err = idl.EncodeTime(args[0], args[1], args[2], args[3], args[4], args[5], e.mode())
	}
	if err != nil {
		L.RaiseError("%s", err)
	}
	tbl := L.CreateTable(res.Len(), 0)
	for _, v := range res.Float64s() {
		tbl.Append(lua.LNumber(v))
	}
	L.Push(tbl)
	return 1
}

func (e *Engine) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	fmt.Fprintln(e.out, strings.Join(parts, "\t"))
	return 0
}

func pushDate(L *lua.LState, d idl.CivilDate) int {
	L.Push(lua.LNumber(d.Year))
	L.Push(lua.LNumber(d.Month))
	L.Push(lua.LNumber(d.Day))
	L.Push(lua.LNumber(d.Hour))
	L.Push(lua.LNumber(d.Minute))
	L.Push(lua.LNumber(d.Seconds()))
	return 6
}
