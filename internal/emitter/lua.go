// Package emitter renders pipeline output as Lua language-server annotation
// text: one `---@meta` unit per namespace with field, alias, and function
// declarations. The pipeline hands it fully rendered names and types; this
// package only owns the comment decoration.
package emitter

import (
	"fmt"
	"strings"

	"github.com/aridclown/defold-annotations/internal/domain"
	"github.com/aridclown/defold-annotations/internal/markdown"
	"github.com/aridclown/defold-annotations/internal/orchestrator"
)

// LuaEmitter implements orchestrator.Emitter for Lua annotation output.
type LuaEmitter struct {
	buf       strings.Builder
	namespace string
}

// New creates a Lua annotation emitter. One emitter may render any number
// of units in sequence; Begin resets it.
func New() *LuaEmitter {
	return &LuaEmitter{}
}

// Begin starts a new unit with the meta header and the namespace table.
func (e *LuaEmitter) Begin(module *domain.Module) {
	e.buf.Reset()
	e.namespace = module.Namespace

	e.buf.WriteString("---@meta\n")
	if brief := markdown.FirstLine(module.Brief); brief != "" {
		fmt.Fprintf(&e.buf, "---%s\n", brief)
	}
	e.buf.WriteString("\n")
	fmt.Fprintf(&e.buf, "---@class %s\n", module.Namespace)
	fmt.Fprintf(&e.buf, "%s = {}\n", module.Namespace)
}

// EmitField writes one constant field declaration with its final type.
func (e *LuaEmitter) EmitField(field orchestrator.RenderedField) {
	e.buf.WriteString("\n")
	e.writeDescription(field.Description)
	fmt.Fprintf(&e.buf, "---@type %s\n", field.Type)
	fmt.Fprintf(&e.buf, "%s.%s = nil\n", e.namespace, field.Name)
}

// EmitAlias writes one alias declaration with its ordered member list.
func (e *LuaEmitter) EmitAlias(qualifiedName string, members []string) {
	e.buf.WriteString("\n")
	fmt.Fprintf(&e.buf, "---@alias %s\n", qualifiedName)
	for _, member := range members {
		fmt.Fprintf(&e.buf, "---| `%s`\n", member)
	}
}

// EmitFunction writes one function declaration with param/return unions.
func (e *LuaEmitter) EmitFunction(fn *orchestrator.RenderedFunction) {
	e.buf.WriteString("\n")
	e.writeDescription(fn.Description)

	var argNames []string
	for _, param := range fn.Params {
		name := param.Name
		if param.Optional {
			name += "?"
		}
		fmt.Fprintf(&e.buf, "---@param %s %s", name, param.Type)
		if doc := markdown.FirstLine(param.Doc); doc != "" {
			fmt.Fprintf(&e.buf, " %s", doc)
		}
		e.buf.WriteString("\n")
		argNames = append(argNames, param.Name)
	}

	for _, ret := range fn.Returns {
		fmt.Fprintf(&e.buf, "---@return %s", ret.Type)
		if doc := markdown.FirstLine(ret.Doc); doc != "" {
			fmt.Fprintf(&e.buf, " %s", doc)
		}
		e.buf.WriteString("\n")
	}

	fmt.Fprintf(&e.buf, "function %s(%s) end\n", fn.Name, strings.Join(argNames, ", "))
}

// EmitVariable writes one module-level variable declaration.
func (e *LuaEmitter) EmitVariable(field orchestrator.RenderedField) {
	e.buf.WriteString("\n")
	e.writeDescription(field.Description)
	fmt.Fprintf(&e.buf, "---@type %s\n", field.Type)
	fmt.Fprintf(&e.buf, "%s.%s = nil\n", e.namespace, field.Name)
}

// EmitStaticAlias writes one fixed alias declaration supplied by the input.
func (e *LuaEmitter) EmitStaticAlias(name, target, description string) {
	e.buf.WriteString("\n")
	e.writeDescription(description)
	fmt.Fprintf(&e.buf, "---@alias %s %s\n", name, target)
}

// EmitClass writes one class declaration with field and method members.
func (e *LuaEmitter) EmitClass(class *orchestrator.RenderedClass) {
	e.buf.WriteString("\n")
	e.writeDescription(class.Description)
	fmt.Fprintf(&e.buf, "---@class %s\n", class.Name)
	for _, field := range class.Fields {
		fmt.Fprintf(&e.buf, "---@field %s %s", field.Name, field.Type)
		if doc := markdown.FirstLine(field.Description); doc != "" {
			fmt.Fprintf(&e.buf, " %s", doc)
		}
		e.buf.WriteString("\n")
	}
	fmt.Fprintf(&e.buf, "local %s = {}\n", class.Name)

	for _, fn := range class.Functions {
		e.EmitFunction(fn)
	}
}

// Finish returns the rendered unit.
func (e *LuaEmitter) Finish() string {
	return e.buf.String()
}

// writeDescription renders a decoded multi-line description as annotation
// comment lines.
func (e *LuaEmitter) writeDescription(description string) {
	decoded := markdown.Decode(description)
	if decoded == "" {
		return
	}
	for _, line := range strings.Split(decoded, "\n") {
		fmt.Fprintf(&e.buf, "---%s\n", line)
	}
}
