package io

import (
	"reflect"
	"strings"

	"github.com/matzehuels/graphclip/pkg/host"
)

// Field names probed for a 2D position, in order.
var positionFields = []string{"NodePos", "Position", "Pos"}

// positionOf returns the node's canvas position and whether one was found.
// Nodes implementing [host.Positioner] are asked directly; others are probed.
func positionOf(n host.Node) (host.Vec2, bool) {
	if p, ok := n.(host.Positioner); ok {
		return p.Position(), true
	}
	return probePosition(n)
}

// setPositionOf moves the node and reports whether a position field was found.
func setPositionOf(n host.Node, pos host.Vec2) (bool, error) {
	if p, ok := n.(host.Positioner); ok {
		return true, p.SetPosition(pos)
	}
	return applyPosition(n, pos), nil
}

// probePosition reads a position from the node's exported struct fields:
// a named vector field, then an integer NodePosX/NodePosY pair, then any
// vector field whose name mentions "pos".
func probePosition(n any) (host.Vec2, bool) {
	loc, ok := locatePosition(n)
	if !ok {
		return host.Vec2{}, false
	}
	return loc.get(), true
}

// applyPosition writes pos into the field probePosition would read. It fails
// for nodes that are not addressable structs.
func applyPosition(n any, pos host.Vec2) bool {
	loc, ok := locatePosition(n)
	if !ok || !loc.x.CanSet() || !loc.y.CanSet() {
		return false
	}
	loc.set(pos)
	return true
}

type positionFieldPair struct {
	x, y reflect.Value
}

func (p positionFieldPair) get() host.Vec2 {
	return host.Vec2{X: number(p.x), Y: number(p.y)}
}

func (p positionFieldPair) set(pos host.Vec2) {
	setNumber(p.x, pos.X)
	setNumber(p.y, pos.Y)
}

func locatePosition(n any) (positionFieldPair, bool) {
	v, ok := structValue(n)
	if !ok {
		return positionFieldPair{}, false
	}
	t := v.Type()

	for _, name := range positionFields {
		if sf, ok := t.FieldByName(name); ok && sf.IsExported() {
			if pair, ok := vectorFields(field(v, sf)); ok {
				return pair, true
			}
		}
	}

	xf, xok := t.FieldByName("NodePosX")
	yf, yok := t.FieldByName("NodePosY")
	if xok && yok && xf.IsExported() && yf.IsExported() && isInteger(xf.Type.Kind()) && isInteger(yf.Type.Kind()) {
		x, y := field(v, xf), field(v, yf)
		if x.IsValid() && y.IsValid() {
			return positionFieldPair{x: x, y: y}, true
		}
	}

	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || !strings.Contains(strings.ToLower(sf.Name), "pos") {
			continue
		}
		if pair, ok := vectorFields(field(v, sf)); ok {
			return pair, true
		}
	}
	return positionFieldPair{}, false
}

// field returns the struct field, or the zero Value when it sits behind a
// nil embedded pointer.
func field(v reflect.Value, sf reflect.StructField) reflect.Value {
	f, err := v.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}
	}
	return f
}

// structValue dereferences pointers and interfaces down to a struct.
func structValue(n any) (reflect.Value, bool) {
	v := reflect.ValueOf(n)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.Kind() == reflect.Struct
}

// vectorFields matches a struct with exactly two float fields.
func vectorFields(v reflect.Value) (positionFieldPair, bool) {
	if v.Kind() != reflect.Struct || v.NumField() != 2 {
		return positionFieldPair{}, false
	}
	x, y := v.Field(0), v.Field(1)
	if !isFloat(x.Kind()) || !isFloat(y.Kind()) {
		return positionFieldPair{}, false
	}
	return positionFieldPair{x: x, y: y}, true
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func number(v reflect.Value) float64 {
	if isFloat(v.Kind()) {
		return v.Float()
	}
	return float64(v.Int())
}

func setNumber(v reflect.Value, f float64) {
	if isFloat(v.Kind()) {
		v.SetFloat(f)
		return
	}
	v.SetInt(int64(f))
}
