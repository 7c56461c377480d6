// Package orchestrator coordinates the generation pipeline: it resets the
// run registries, merges input modules, collects constants, runs proactive
// alias inference once, resolves every signature, and renders one
// annotation unit per namespace through the emitter.
package orchestrator

import (
	"fmt"
	"sort"

	"github.com/aridclown/defold-annotations/internal/alias"
	"github.com/aridclown/defold-annotations/internal/config"
	"github.com/aridclown/defold-annotations/internal/console"
	"github.com/aridclown/defold-annotations/internal/domain"
	"github.com/aridclown/defold-annotations/internal/registry"
	"github.com/aridclown/defold-annotations/internal/schema"
)

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// Emitter renders one namespace's annotation unit. The pipeline drives it
// with fully rendered names and types; all comment decoration belongs to
// the implementation.
type Emitter interface {
	Begin(module *domain.Module)
	EmitField(field RenderedField)
	EmitAlias(qualifiedName string, members []string)
	EmitFunction(fn *RenderedFunction)
	EmitVariable(field RenderedField)
	EmitStaticAlias(name, target, description string)
	EmitClass(class *RenderedClass)
	Finish() string
}

// RenderedField is a field declaration with its final type.
type RenderedField struct {
	Name        string
	Type        string
	Description string
}

// RenderedParam is a function parameter with its rendered union type.
type RenderedParam struct {
	Name     string
	Type     string
	Doc      string
	Optional bool
}

// RenderedReturn is a function return with its rendered union type.
type RenderedReturn struct {
	Type string
	Doc  string
}

// RenderedFunction is a function declaration ready for emission.
type RenderedFunction struct {
	Name        string
	Description string
	Params      []RenderedParam
	Returns     []RenderedReturn
}

// RenderedClass is a class declaration with its rendered members.
type RenderedClass struct {
	Name        string
	Description string
	Fields      []RenderedField
	Functions   []*RenderedFunction
}

// Unit is one rendered output unit, one per namespace.
type Unit struct {
	Namespace string
	Content   string
}

// Config holds pipeline configuration.
type Config struct {
	Tables  *config.Config
	Emitter Emitter
	Debug   Debugger
}

// Service runs the generation pipeline over one registry it owns
// exclusively. A Service value must not be shared by concurrent runs.
type Service struct {
	registry   *registry.Service
	inferencer *alias.Inferencer
	resolver   *alias.Resolver
	renderer   *schema.Renderer
	emitter    Emitter
	tables     *config.Config
	debug      Debugger
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(string, ...interface{}) {}

// New creates a pipeline service with the given configuration.
func New(cfg *Config) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Tables == nil {
		cfg.Tables = config.Default()
	}
	if cfg.Debug == nil {
		cfg.Debug = noOpDebugger{}
	}

	reg := registry.NewService()

	return &Service{
		registry:   reg,
		inferencer: alias.NewInferencer(reg),
		resolver:   alias.NewResolver(reg),
		renderer:   schema.NewRenderer(cfg.Tables, reg),
		emitter:    cfg.Emitter,
		tables:     cfg.Tables,
		debug:      cfg.Debug,
	}
}

// Registry exposes the run registry, mainly for tests.
func (s *Service) Registry() *registry.Service {
	return s.registry
}

// Run executes one generation run over the input modules and returns the
// rendered units in namespace order.
func (s *Service) Run(modules []*domain.Module) ([]Unit, error) {
	// Step 1: run-scoped reset of both registries.
	s.registry.Reset()

	// Step 2: merge modules sharing a namespace.
	merged := MergeModules(modules)
	s.debug.Printf("pipeline: merged %d descriptors into %d modules", len(modules), len(merged))

	// Step 3: collect constants into the catalog.
	for _, module := range merged {
		s.collectConstants(module)
	}

	// Step 4: proactive inference, exactly once, before any rendering.
	s.inferencer.Run()

	// Step 5: resolve every signature. Reactive resolution may still
	// create or extend aliases and rewrite constant types, so it must
	// finish before any field or alias declaration is emitted.
	prepared := make(map[string][]preparedElement, len(merged))
	for _, module := range merged {
		if s.skipModule(module) {
			continue
		}
		elements, err := s.prepareModule(module)
		if err != nil {
			return nil, err
		}
		prepared[module.Namespace] = elements
	}

	// Step 6: emit one unit per namespace.
	var units []Unit
	for _, module := range merged {
		elements, ok := prepared[module.Namespace]
		if !ok {
			continue
		}
		units = append(units, s.emitModule(module, elements))
	}

	return units, nil
}

// skipModule drops ignored namespaces and modules with nothing to render.
func (s *Service) skipModule(module *domain.Module) bool {
	if _, ignored := s.tables.IgnoredNamespaces[module.Namespace]; ignored {
		s.debug.Printf("pipeline: namespace %s ignored by configuration", module.Namespace)
		return true
	}
	if len(module.Elements) == 0 {
		console.Logger.Debug("module %s has no renderable elements, skipping", module.Namespace)
		return true
	}
	return false
}

// collectConstants registers every constant element of a module. Constant
// names lacking a namespace separator are silently unregistrable.
func (s *Service) collectConstants(module *domain.Module) {
	for _, element := range module.Elements {
		if element.Kind != domain.KindConstant {
			continue
		}
		c, ok := domain.NewConstant(element.Name, element.Description)
		if !ok {
			continue
		}
		s.registry.RegisterConstant(c)
	}
}

// elementFullName qualifies an element name with its module namespace.
func elementFullName(module *domain.Module, element *domain.Element) string {
	return module.Namespace + "." + element.Name
}

// sortElements orders non-constant declarations by (kind, name).
func sortElements(elements []preparedElement) {
	sort.SliceStable(elements, func(a, b int) bool {
		if elements[a].kind != elements[b].kind {
			return elements[a].kind < elements[b].kind
		}
		return elements[a].name < elements[b].name
	})
}

// emitModule renders one namespace in declaration order: header, constant
// fields in catalog order, alias declarations sorted by name, then the
// remaining declarations.
func (s *Service) emitModule(module *domain.Module, elements []preparedElement) Unit {
	s.emitter.Begin(module)

	for _, c := range s.registry.ConstantsOf(module.Namespace) {
		s.emitter.EmitField(RenderedField{
			Name:        c.ShortName,
			Type:        c.RenderedType,
			Description: c.Description,
		})
	}

	for _, group := range s.registry.AliasesOf(module.Namespace) {
		s.emitter.EmitAlias(group.QualifiedName(), domain.SortedKeys(group.Members))
	}

	sortElements(elements)
	for _, element := range elements {
		element.emit(s.emitter)
	}

	return Unit{Namespace: module.Namespace, Content: s.emitter.Finish()}
}

// prepareModule resolves and renders every non-constant element.
func (s *Service) prepareModule(module *domain.Module) ([]preparedElement, error) {
	prepared := make([]preparedElement, 0, len(module.Elements))
	for i := range module.Elements {
		element := &module.Elements[i]
		if element.Kind == domain.KindConstant {
			continue
		}
		item, err := s.prepareElement(module, element)
		if err != nil {
			return nil, err
		}
		prepared = append(prepared, item)
	}
	return prepared, nil
}

func (s *Service) prepareElement(module *domain.Module, element *domain.Element) (preparedElement, error) {
	switch element.Kind {
	case domain.KindFunction:
		fn, err := s.prepareFunction(module, element)
		if err != nil {
			return preparedElement{}, err
		}
		return preparedElement{kind: element.Kind, name: element.Name, fn: fn}, nil

	case domain.KindVariable:
		union, err := s.renderer.Render(config.RoleReturn, elementFullName(module, element), "", []string{element.Type})
		if err != nil {
			return preparedElement{}, err
		}
		return preparedElement{kind: element.Kind, name: element.Name, field: &RenderedField{
			Name:        element.Name,
			Type:        union,
			Description: element.Description,
		}}, nil

	case domain.KindStaticAlias:
		union, err := s.renderer.Render(config.RoleReturn, elementFullName(module, element), "", []string{element.Type})
		if err != nil {
			return preparedElement{}, err
		}
		return preparedElement{kind: element.Kind, name: element.Name, staticAlias: &RenderedField{
			Name:        element.Name,
			Type:        union,
			Description: element.Description,
		}}, nil

	case domain.KindClass:
		class, err := s.prepareClass(module, element)
		if err != nil {
			return preparedElement{}, err
		}
		return preparedElement{kind: element.Kind, name: element.Name, class: class}, nil

	default:
		return preparedElement{}, fmt.Errorf("unsupported element kind %q for %s", element.Kind, element.Name)
	}
}

// prepareFunction resolves every parameter and return type-list and renders
// the final unions.
func (s *Service) prepareFunction(module *domain.Module, element *domain.Element) (*RenderedFunction, error) {
	fullName := elementFullName(module, element)
	fn := &RenderedFunction{
		Name:        fullName,
		Description: element.Description,
	}

	for _, param := range element.Parameters {
		resolved := s.resolver.Resolve(param.Types, param.Doc)
		union, err := s.renderer.Render(config.RoleParam, fullName, param.Name, resolved)
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, RenderedParam{
			Name:     s.tables.RenameIdentifier(fullName, param.Name),
			Type:     union,
			Doc:      param.Doc,
			Optional: param.Optional,
		})
	}

	for _, ret := range element.Returns {
		resolved := s.resolver.Resolve(ret.Types, ret.Doc)
		union, err := s.renderer.Render(config.RoleReturn, fullName, ret.Name, resolved)
		if err != nil {
			return nil, err
		}
		fn.Returns = append(fn.Returns, RenderedReturn{Type: union, Doc: ret.Doc})
	}

	return fn, nil
}

func (s *Service) prepareClass(module *domain.Module, element *domain.Element) (*RenderedClass, error) {
	class := &RenderedClass{
		Name:        element.Name,
		Description: element.Description,
	}

	for i := range element.Members {
		member := &element.Members[i]
		switch member.Kind {
		case domain.KindFunction:
			fn, err := s.prepareFunction(module, member)
			if err != nil {
				return nil, err
			}
			class.Functions = append(class.Functions, fn)
		case domain.KindVariable:
			union, err := s.renderer.Render(config.RoleReturn, elementFullName(module, member), "", []string{member.Type})
			if err != nil {
				return nil, err
			}
			class.Fields = append(class.Fields, RenderedField{
				Name:        member.Name,
				Type:        union,
				Description: member.Description,
			})
		default:
			return nil, fmt.Errorf("unsupported class member kind %q for %s.%s", member.Kind, element.Name, member.Name)
		}
	}

	return class, nil
}

// preparedElement is one resolved, render-ready declaration.
type preparedElement struct {
	kind domain.ElementKind
	name string

	fn          *RenderedFunction
	field       *RenderedField
	staticAlias *RenderedField
	class       *RenderedClass
}

func (p preparedElement) emit(emitter Emitter) {
	switch {
	case p.fn != nil:
		emitter.EmitFunction(p.fn)
	case p.field != nil:
		emitter.EmitVariable(*p.field)
	case p.staticAlias != nil:
		emitter.EmitStaticAlias(p.staticAlias.Name, p.staticAlias.Type, p.staticAlias.Description)
	case p.class != nil:
		emitter.EmitClass(p.class)
	}
}
