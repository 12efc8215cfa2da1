package cli

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

type flagKind uint8

const (
	flagBool flagKind = iota + 1
	flagString
	flagInt
	flagStringSlice
	flagChoice
)

// FlagSet is a typed flag registry for a command.
type FlagSet struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

type flagDef struct {
	name      string
	shorthand rune
	usage     string
	kind      flagKind
	choices   []string // flagChoice only

	changed bool // set by the parser on first assignment

	boolPtr   *bool
	stringPtr *string // flagString and flagChoice
	intPtr    *int
	slicePtr  *[]string
}

func newFlagSet() *FlagSet {
	return &FlagSet{
		byLong:  map[string]*flagDef{},
		byShort: map[rune]*flagDef{},
	}
}

// Bool defines a boolean flag. On the command line it may be given bare (--name), or with an explicit value (--name=false).
func (fs *FlagSet) Bool(name string, shorthand rune, def bool, usage string) *bool {
	ptr := new(bool)
	*ptr = def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagBool, boolPtr: ptr})
	return ptr
}

func (fs *FlagSet) String(name string, shorthand rune, def string, usage string) *string {
	ptr := new(string)
	*ptr = def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagString, stringPtr: ptr})
	return ptr
}

func (fs *FlagSet) Int(name string, shorthand rune, def int, usage string) *int {
	ptr := new(int)
	*ptr = def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagInt, intPtr: ptr})
	return ptr
}

// StringSlice defines a repeatable flag. Each occurrence appends one value.
func (fs *FlagSet) StringSlice(name string, shorthand rune, usage string) *[]string {
	ptr := new([]string)
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagStringSlice, slicePtr: ptr})
	return ptr
}

// Choice defines a string flag restricted to choices. def need not be one of them (ex: "" for "unset").
func (fs *FlagSet) Choice(name string, shorthand rune, def string, choices []string, usage string) *string {
	if len(choices) == 0 {
		panic("cli: Choice flag needs at least one choice: --" + name)
	}
	ptr := new(string)
	*ptr = def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagChoice, choices: slices.Clone(choices), stringPtr: ptr})
	return ptr
}

// Changed reports whether the flag called name was set on the command line.
func (fs *FlagSet) Changed(name string) bool {
	def, ok := fs.byLong[name]
	return ok && def.changed
}

func (fs *FlagSet) add(def *flagDef) {
	if def.name == "" {
		panic("cli: flag name must be non-empty")
	}
	if _, ok := fs.byLong[def.name]; ok {
		panic("cli: duplicate flag: --" + def.name)
	}
	fs.byLong[def.name] = def
	if def.shorthand != 0 {
		if _, ok := fs.byShort[def.shorthand]; ok {
			panic(fmt.Sprintf("cli: duplicate shorthand flag: -%c", def.shorthand))
		}
		fs.byShort[def.shorthand] = def
	}
}

// activeFlags are the flags visible to one command: persistent flags along its path plus its local flags.
type activeFlags struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

func (c *Command) activeFlags() activeFlags {
	a := activeFlags{byLong: map[string]*flagDef{}, byShort: map[rune]*flagDef{}}
	for _, cmd := range c.pathFromRoot() {
		if cmd.persistentFlags != nil {
			for _, def := range cmd.persistentFlags.byLong {
				a.add(def)
			}
		}
	}
	if c.localFlags != nil {
		for _, def := range c.localFlags.byLong {
			a.add(def)
		}
	}
	return a
}

func (a activeFlags) add(def *flagDef) {
	if existing, ok := a.byLong[def.name]; ok && existing != def {
		panic("cli: flag name conflict across command path: --" + def.name)
	}
	a.byLong[def.name] = def
	if def.shorthand != 0 {
		if existing, ok := a.byShort[def.shorthand]; ok && existing != def {
			panic(fmt.Sprintf("cli: shorthand conflict across command path: -%c", def.shorthand))
		}
		a.byShort[def.shorthand] = def
	}
}

func (a activeFlags) sorted() []*flagDef {
	defs := make([]*flagDef, 0, len(a.byLong))
	for _, def := range a.byLong {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].name < defs[j].name })
	return defs
}

func (def *flagDef) set(raw string) error {
	switch def.kind {
	case flagBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*def.boolPtr = v
	case flagString:
		*def.stringPtr = raw
	case flagInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*def.intPtr = v
	case flagStringSlice:
		*def.slicePtr = append(*def.slicePtr, raw)
	case flagChoice:
		if !slices.Contains(def.choices, raw) {
			return fmt.Errorf("must be one of %s", strings.Join(def.choices, ", "))
		}
		*def.stringPtr = raw
	default:
		return fmt.Errorf("unknown flag kind")
	}
	def.changed = true
	return nil
}

// valueHint is the placeholder shown after the flag name in help.
func (def *flagDef) valueHint() string {
	switch def.kind {
	case flagString:
		return "<string>"
	case flagInt:
		return "<int>"
	case flagStringSlice:
		return "<string>..."
	case flagChoice:
		return "<" + strings.Join(def.choices, "|") + ">"
	default:
		return ""
	}
}

func (def *flagDef) display() string {
	if def.shorthand != 0 {
		return fmt.Sprintf("-%c/--%s", def.shorthand, def.name)
	}
	return "--" + def.name
}
