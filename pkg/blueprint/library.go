package blueprint

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphclip/pkg/host"
)

//go:embed default.toml
var defaultLibrary []byte

// Class owns a set of overridable events.
type Class struct {
	Name   string
	Path   string
	Events []*host.Event
}

// Library is the type registry and symbol library of the in-memory host.
//
// The zero value is not usable - use NewLibrary, ParseLibrary or
// DefaultLibrary.
type Library struct {
	kinds     map[string]*Kind
	functions map[string]*host.Function
	variables map[string]*host.Variable
	classes   map[string]*Class
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		kinds:     make(map[string]*Kind),
		functions: make(map[string]*host.Function),
		variables: make(map[string]*host.Variable),
		classes:   make(map[string]*Class),
	}
}

// DefaultLibrary returns a fresh copy of the built-in library.
func DefaultLibrary() *Library {
	lib, err := ParseLibrary(defaultLibrary)
	if err != nil {
		panic(fmt.Sprintf("blueprint: built-in library: %v", err))
	}
	return lib
}

// LoadLibrary reads a TOML library file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library %s: %w", path, err)
	}
	lib, err := ParseLibrary(data)
	if err != nil {
		return nil, fmt.Errorf("library %s: %w", path, err)
	}
	return lib, nil
}

type libraryFile struct {
	Kinds     []kindEntry     `toml:"kind"`
	Functions []functionEntry `toml:"function"`
	Variables []paramEntry    `toml:"variable"`
	Classes   []classEntry    `toml:"class"`
}

type kindEntry struct {
	Name   string       `toml:"name"`
	Title  string       `toml:"title"`
	Flavor string       `toml:"flavor"`
	Pins   []paramEntry `toml:"pin"`
}

type functionEntry struct {
	Name              string       `toml:"name"`
	DisplayName       string       `toml:"display_name"`
	Owner             string       `toml:"owner"`
	Pure              bool         `toml:"pure"`
	Params            []paramEntry `toml:"param"`
	ReturnCategory    string       `toml:"return_category"`
	ReturnSubCategory string       `toml:"return_subcategory"`
}

type classEntry struct {
	Name   string       `toml:"name"`
	Path   string       `toml:"path"`
	Events []eventEntry `toml:"event"`
}

type eventEntry struct {
	Name   string       `toml:"name"`
	Params []paramEntry `toml:"param"`
}

type paramEntry struct {
	Name        string `toml:"name"`
	Direction   string `toml:"direction"`
	Category    string `toml:"category"`
	SubCategory string `toml:"subcategory"`
	Default     string `toml:"default"`
}

func (p paramEntry) param() (host.Param, error) {
	dir := host.Input
	if p.Direction != "" {
		d, ok := host.ParseDirection(p.Direction)
		if !ok {
			return host.Param{}, fmt.Errorf("pin %s: unknown direction %q", p.Name, p.Direction)
		}
		dir = d
	}
	if p.Name == "" {
		return host.Param{}, fmt.Errorf("pin name must not be empty")
	}
	return host.Param{
		Name:      p.Name,
		Type:      host.PinType{Category: p.Category, SubCategory: p.SubCategory},
		Direction: dir,
		Default:   p.Default,
	}, nil
}

func params(entries []paramEntry) ([]host.Param, error) {
	out := make([]host.Param, 0, len(entries))
	for _, e := range entries {
		p, err := e.param()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ParseLibrary decodes a TOML library.
func ParseLibrary(data []byte) (*Library, error) {
	var file libraryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	lib := NewLibrary()
	for _, k := range file.Kinds {
		flavor, err := ParseFlavor(k.Flavor)
		if err != nil {
			return nil, fmt.Errorf("kind %s: %w", k.Name, err)
		}
		pins, err := params(k.Pins)
		if err != nil {
			return nil, fmt.Errorf("kind %s: %w", k.Name, err)
		}
		if err := lib.AddKind(&Kind{Name: k.Name, Title: k.Title, Flavor: flavor, Pins: pins}); err != nil {
			return nil, err
		}
	}
	for _, f := range file.Functions {
		ps, err := params(f.Params)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", f.Name, err)
		}
		fn := &host.Function{Name: f.Name, DisplayName: f.DisplayName, Owner: f.Owner, Pure: f.Pure, Params: ps}
		if f.ReturnCategory != "" {
			fn.Return = &host.PinType{Category: f.ReturnCategory, SubCategory: f.ReturnSubCategory}
		}
		if err := lib.AddFunction(fn); err != nil {
			return nil, err
		}
	}
	for _, v := range file.Variables {
		if err := lib.AddVariable(&host.Variable{
			Name: v.Name,
			Type: host.PinType{Category: v.Category, SubCategory: v.SubCategory},
		}); err != nil {
			return nil, err
		}
	}
	for _, c := range file.Classes {
		class := &Class{Name: c.Name, Path: c.Path}
		for _, e := range c.Events {
			ps, err := params(e.Params)
			if err != nil {
				return nil, fmt.Errorf("event %s.%s: %w", c.Name, e.Name, err)
			}
			class.Events = append(class.Events, &host.Event{Name: e.Name, ClassName: c.Name, ClassPath: c.Path, Params: ps})
		}
		if err := lib.AddClass(class); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// AddKind registers a node kind under its type tag.
func (l *Library) AddKind(k *Kind) error {
	if k == nil || k.Name == "" {
		return fmt.Errorf("kind name must not be empty")
	}
	l.kinds[k.Name] = k
	return nil
}

// AddFunction registers a function under its name.
func (l *Library) AddFunction(f *host.Function) error {
	if f == nil || f.Name == "" {
		return fmt.Errorf("function name must not be empty")
	}
	l.functions[f.Name] = f
	return nil
}

// AddVariable registers a variable under its name.
func (l *Library) AddVariable(v *host.Variable) error {
	if v == nil || v.Name == "" {
		return fmt.Errorf("variable name must not be empty")
	}
	l.variables[v.Name] = v
	return nil
}

// AddClass registers a class under its path. Events without a class name or
// path inherit the class's.
func (l *Library) AddClass(c *Class) error {
	if c == nil || c.Path == "" {
		return fmt.Errorf("class path must not be empty")
	}
	for _, e := range c.Events {
		if e.ClassName == "" {
			e.ClassName = c.Name
		}
		if e.ClassPath == "" {
			e.ClassPath = c.Path
		}
	}
	l.classes[c.Path] = c
	return nil
}

// Merge copies every entry of other into l, replacing entries with the same
// key.
func (l *Library) Merge(other *Library) {
	for k, v := range other.kinds {
		l.kinds[k] = v
	}
	for k, v := range other.functions {
		l.functions[k] = v
	}
	for k, v := range other.variables {
		l.variables[k] = v
	}
	for k, v := range other.classes {
		l.classes[k] = v
	}
}

// Kind implements [host.Registry].
func (l *Library) Kind(typeName string) (host.Kind, bool) {
	k, ok := l.kinds[typeName]
	if !ok {
		return nil, false
	}
	return k, true
}

// KindByName returns the concrete kind for a type tag, or nil.
func (l *Library) KindByName(typeName string) *Kind { return l.kinds[typeName] }

// Function implements [host.Library].
func (l *Library) Function(name string) (*host.Function, bool) {
	f, ok := l.functions[name]
	return f, ok
}

// Variable implements [host.Library].
func (l *Library) Variable(name string) (*host.Variable, bool) {
	v, ok := l.variables[name]
	return v, ok
}

// Event implements [host.Library].
func (l *Library) Event(name, classPath string) (*host.Event, bool) {
	c, ok := l.classes[classPath]
	if !ok {
		return nil, false
	}
	for _, e := range c.Events {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// FindEvent implements [host.Library]. Classes are searched in path order so
// the result is deterministic when several classes declare the same event.
func (l *Library) FindEvent(name string) (*host.Event, bool) {
	for _, path := range l.classPaths() {
		if e, ok := l.Event(name, path); ok {
			return e, true
		}
	}
	return nil, false
}

func (l *Library) classPaths() []string {
	paths := make([]string, 0, len(l.classes))
	for p := range l.classes {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// KindNames returns every registered type tag, sorted.
func (l *Library) KindNames() []string {
	names := make([]string, 0, len(l.kinds))
	for n := range l.kinds {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

var (
	_ host.Registry = (*Library)(nil)
	_ host.Library  = (*Library)(nil)
	_ host.Graph    = (*Graph)(nil)
	_ host.Node     = (*Node)(nil)
	_ host.Pin      = (*Pin)(nil)
)
