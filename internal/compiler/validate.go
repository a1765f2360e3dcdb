package compiler

import (
	"fmt"

	"github.com/roach88/qed/cat"
)

// Validation error codes (E100-E139).
const (
	// General (E100).
	ErrUnknownReference = "E100" // reference to an undeclared structure

	// Category errors (E101-E109).
	ErrCategoryNoObjects    = "E101" // category declares no objects
	ErrArrowBadEndpoint     = "E102" // arrow endpoint is not a declared object
	ErrArrowReservedName    = "E103" // arrow name collides with the identity form
	ErrComposeUnknownArrow  = "E104" // composition table names an undeclared arrow
	ErrComposeBadEndpoints  = "E105" // composition entry has wrong endpoints
	ErrComposeMissingEntry  = "E106" // composable pair has no table entry
	ErrUnknownCapability    = "E107" // capability name is not in the closed set
	ErrDuplicateObject      = "E108" // object declared twice

	// Functor errors (E110-E119).
	ErrFunctorObjectMap = "E111" // object map not total or image unknown
	ErrFunctorArrowMap  = "E112" // arrow map not total, unresolvable, or ill-typed
	ErrFunctorComposite = "E113" // composite chain broken or cyclic

	// Transformation errors (E120-E129).
	ErrTransformationShape     = "E120" // source/target functors not parallel
	ErrTransformationComponent = "E121" // component missing, unknown, or ill-typed

	// Adjunction errors (E130-E139).
	ErrAdjunctionShape = "E131" // functors do not run opposite each other
)

// ValidationError is one structural defect in a presentation. Validation
// aggregates every defect it finds; it never fails fast.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate cross-checks a compiled library spec: every reference resolves,
// every map is total, every endpoint lines up. It checks structure only;
// whether the presented data satisfies the categorical laws is the laws
// package's question, asked after Build.
func Validate(lib *LibrarySpec) []ValidationError {
	v := &validator{lib: lib, endpoints: make(map[string]*functorEndpoints)}

	for _, name := range sortedKeys(lib.Categories) {
		v.validateCategory(lib.Categories[name])
	}
	for _, name := range sortedKeys(lib.Functors) {
		v.validateFunctor(lib.Functors[name])
	}
	for _, name := range sortedKeys(lib.Transformations) {
		v.validateTransformation(lib.Transformations[name])
	}
	for _, name := range sortedKeys(lib.Adjunctions) {
		v.validateAdjunction(lib.Adjunctions[name])
	}

	return v.errs
}

type validator struct {
	lib       *LibrarySpec
	errs      []ValidationError
	endpoints map[string]*functorEndpoints
}

// functorEndpoints caches a functor's resolved category endpoints. The nil
// value marks a functor whose endpoints could not be resolved; resolution
// errors are reported once, at the functor itself.
type functorEndpoints struct {
	source string
	target string
}

func (v *validator) addError(field, code, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	})
}

func (v *validator) validateCategory(spec *CategorySpec) {
	field := "category." + spec.Name

	if len(spec.Objects) == 0 {
		v.addError(field+".objects", ErrCategoryNoObjects, "at least one object is required")
	}
	seen := make(map[string]bool, len(spec.Objects))
	for _, o := range spec.Objects {
		if seen[o] {
			v.addError(field+".objects", ErrDuplicateObject, "object %q declared twice", o)
		}
		seen[o] = true
	}

	for _, name := range spec.ArrowNames() {
		a := spec.Arrows[name]
		arrowField := field + ".arrows." + name
		if _, ok := parseIdentityArrow(name); ok {
			v.addError(arrowField, ErrArrowReservedName,
				"arrow name %q collides with the reserved identity form", name)
		}
		if !spec.HasObject(a.Dom) {
			v.addError(arrowField, ErrArrowBadEndpoint, "dom %q is not a declared object", a.Dom)
		}
		if !spec.HasObject(a.Cod) {
			v.addError(arrowField, ErrArrowBadEndpoint, "cod %q is not a declared object", a.Cod)
		}
	}

	v.validateComposeTable(spec, field)

	for _, capName := range spec.Capabilities {
		if _, err := cat.ParseCapability(capName); err != nil {
			v.addError(field+".capabilities", ErrUnknownCapability, "%v", err)
		}
	}
}

// validateComposeTable checks that the table names only declared arrows,
// has endpoint-correct results, and is total on composable pairs of
// declared arrows. Identity arrows stay out of the table: the built
// category composes them implicitly.
func (v *validator) validateComposeTable(spec *CategorySpec, field string) {
	for _, f := range sortedKeys(spec.Compose) {
		ff, ok := spec.Arrows[f]
		if !ok {
			v.addError(field+".compose", ErrComposeUnknownArrow, "row names undeclared arrow %q", f)
			continue
		}
		row := spec.Compose[f]
		for _, g := range sortedKeys(row) {
			entryField := fmt.Sprintf("%s.compose.%s.%s", field, f, g)
			gg, ok := spec.Arrows[g]
			if !ok {
				v.addError(entryField, ErrComposeUnknownArrow, "column names undeclared arrow %q", g)
				continue
			}
			if ff.Cod != gg.Dom {
				v.addError(entryField, ErrComposeBadEndpoints,
					"%q then %q is not composable: cod %q != dom %q", f, g, ff.Cod, gg.Dom)
				continue
			}
			h := row[g]
			hh, ok := spec.ResolveArrow(h)
			if !ok {
				v.addError(entryField, ErrComposeUnknownArrow, "result %q is not a declared arrow", h)
				continue
			}
			if hh.Dom != ff.Dom || hh.Cod != gg.Cod {
				v.addError(entryField, ErrComposeBadEndpoints,
					"result %q must run %s -> %s, runs %s -> %s", h, ff.Dom, gg.Cod, hh.Dom, hh.Cod)
			}
		}
	}

	// Totality: every composable pair of declared arrows needs an entry.
	names := spec.ArrowNames()
	for _, f := range names {
		for _, g := range names {
			if spec.Arrows[f].Cod != spec.Arrows[g].Dom {
				continue
			}
			if _, ok := spec.Compose[f][g]; !ok {
				v.addError(field+".compose", ErrComposeMissingEntry,
					"no entry for composable pair (%s, %s)", f, g)
			}
		}
	}
}

func (v *validator) validateFunctor(spec *FunctorSpec) {
	// Endpoint resolution reports unknown references, broken composites,
	// and cycles on its own.
	ep := v.resolveEndpoints(spec.Name, nil)
	if ep == nil || spec.Kind() != FunctorExplicit {
		return
	}

	field := "functor." + spec.Name
	source, sourceOK := v.lib.Categories[spec.Source]
	target, targetOK := v.lib.Categories[spec.Target]
	if !sourceOK || !targetOK {
		return
	}

	for _, o := range source.Objects {
		img, ok := spec.Objects[o]
		if !ok {
			v.addError(field+".objects", ErrFunctorObjectMap, "no image for object %q", o)
			continue
		}
		if !target.HasObject(img) {
			v.addError(field+".objects", ErrFunctorObjectMap,
				"image %q of object %q is not an object of %s", img, o, spec.Target)
		}
	}

	for _, name := range source.ArrowNames() {
		a := source.Arrows[name]
		img, ok := spec.Arrows[name]
		if !ok {
			v.addError(field+".arrows", ErrFunctorArrowMap, "no image for arrow %q", name)
			continue
		}
		imgSpec, ok := target.ResolveArrow(img)
		if !ok {
			v.addError(field+".arrows", ErrFunctorArrowMap,
				"image %q of arrow %q is not an arrow of %s", img, name, spec.Target)
			continue
		}
		wantDom, okDom := spec.Objects[a.Dom]
		wantCod, okCod := spec.Objects[a.Cod]
		if !okDom || !okCod {
			continue // reported by the object sweep
		}
		if imgSpec.Dom != wantDom || imgSpec.Cod != wantCod {
			v.addError(field+".arrows", ErrFunctorArrowMap,
				"image %q of arrow %q must run %s -> %s, runs %s -> %s",
				img, name, wantDom, wantCod, imgSpec.Dom, imgSpec.Cod)
		}
	}
}

// resolveEndpoints computes a functor's source and target category names,
// memoized, detecting broken references and composite cycles. Returns nil
// after reporting when the endpoints cannot be resolved.
func (v *validator) resolveEndpoints(name string, trail []string) *functorEndpoints {
	if ep, ok := v.endpoints[name]; ok {
		return ep
	}
	for _, t := range trail {
		if t == name {
			v.addError("functor."+name, ErrFunctorComposite,
				"composite cycle through %q", name)
			v.endpoints[name] = nil
			return nil
		}
	}

	spec, ok := v.lib.Functors[name]
	if !ok {
		// The referrer reports unknown functor names; nothing to record.
		return nil
	}

	field := "functor." + name
	var ep *functorEndpoints
	switch spec.Kind() {
	case FunctorIdentity:
		if _, ok := v.lib.Categories[spec.Identity]; !ok {
			v.addError(field, ErrUnknownReference, "unknown category %q", spec.Identity)
		} else {
			ep = &functorEndpoints{source: spec.Identity, target: spec.Identity}
		}
	case FunctorComposite:
		ep = v.resolveComposite(spec, field, append(trail, name))
	default:
		_, sourceOK := v.lib.Categories[spec.Source]
		_, targetOK := v.lib.Categories[spec.Target]
		if !sourceOK {
			v.addError(field+".source", ErrUnknownReference, "unknown category %q", spec.Source)
		}
		if !targetOK {
			v.addError(field+".target", ErrUnknownReference, "unknown category %q", spec.Target)
		}
		if sourceOK && targetOK {
			ep = &functorEndpoints{source: spec.Source, target: spec.Target}
		}
	}

	v.endpoints[name] = ep
	return ep
}

func (v *validator) resolveComposite(spec *FunctorSpec, field string, trail []string) *functorEndpoints {
	var ep *functorEndpoints
	for _, part := range spec.Compose {
		if _, ok := v.lib.Functors[part]; !ok {
			v.addError(field+".compose", ErrUnknownReference, "unknown functor %q", part)
			return nil
		}
		partEP := v.resolveEndpoints(part, trail)
		if partEP == nil {
			return nil
		}
		if ep == nil {
			ep = &functorEndpoints{source: partEP.source, target: partEP.target}
			continue
		}
		if ep.target != partEP.source {
			v.addError(field+".compose", ErrFunctorComposite,
				"%q out of %s cannot follow a functor into %s", part, partEP.source, ep.target)
			return nil
		}
		ep.target = partEP.target
	}
	return ep
}

func (v *validator) validateTransformation(spec *TransformationSpec) {
	field := "transformation." + spec.Name

	if _, ok := v.lib.Functors[spec.Source]; !ok {
		v.addError(field+".source", ErrUnknownReference, "unknown functor %q", spec.Source)
	}
	if _, ok := v.lib.Functors[spec.Target]; !ok {
		v.addError(field+".target", ErrUnknownReference, "unknown functor %q", spec.Target)
	}
	sourceEP := v.resolveEndpoints(spec.Source, nil)
	targetEP := v.resolveEndpoints(spec.Target, nil)
	if sourceEP == nil || targetEP == nil {
		return
	}
	if *sourceEP != *targetEP {
		v.addError(field, ErrTransformationShape,
			"functors are not parallel: %s runs %s -> %s, %s runs %s -> %s",
			spec.Source, sourceEP.source, sourceEP.target,
			spec.Target, targetEP.source, targetEP.target)
		return
	}

	base, ok := v.lib.Categories[sourceEP.source]
	targetCat, targetOK := v.lib.Categories[sourceEP.target]
	if !ok || !targetOK {
		return
	}

	for _, o := range base.Objects {
		ref, ok := spec.Components[o]
		if !ok {
			v.addError(field+".components", ErrTransformationComponent,
				"no component at object %q", o)
			continue
		}
		arrow, ok := targetCat.ResolveArrow(ref)
		if !ok {
			v.addError(field+".components", ErrTransformationComponent,
				"component %q at object %q is not an arrow of %s", ref, o, sourceEP.target)
			continue
		}
		wantDom, err := v.objectImage(spec.Source, o)
		if err != nil {
			continue // endpoint errors reported at the functor
		}
		wantCod, err := v.objectImage(spec.Target, o)
		if err != nil {
			continue
		}
		if arrow.Dom != wantDom || arrow.Cod != wantCod {
			v.addError(field+".components", ErrTransformationComponent,
				"component %q at object %q must run %s -> %s, runs %s -> %s",
				ref, o, wantDom, wantCod, arrow.Dom, arrow.Cod)
		}
	}
}

// objectImage evaluates a functor's object map on one object, through
// identity and composite forms.
func (v *validator) objectImage(functorName, object string) (string, error) {
	spec, ok := v.lib.Functors[functorName]
	if !ok {
		return "", fmt.Errorf("unknown functor %q", functorName)
	}
	switch spec.Kind() {
	case FunctorIdentity:
		return object, nil
	case FunctorComposite:
		img := object
		for _, part := range spec.Compose {
			next, err := v.objectImage(part, img)
			if err != nil {
				return "", err
			}
			img = next
		}
		return img, nil
	default:
		img, ok := spec.Objects[object]
		if !ok {
			return "", fmt.Errorf("functor %q has no image for object %q", functorName, object)
		}
		return img, nil
	}
}

func (v *validator) validateAdjunction(spec *AdjunctionSpec) {
	field := "adjunction." + spec.Name

	for _, ref := range []struct {
		field string
		name  string
	}{
		{"left", spec.Left},
		{"right", spec.Right},
	} {
		if _, ok := v.lib.Functors[ref.name]; !ok {
			v.addError(field+"."+ref.field, ErrUnknownReference, "unknown functor %q", ref.name)
		}
	}
	for _, ref := range []struct {
		field string
		name  string
	}{
		{"unit", spec.Unit},
		{"counit", spec.Counit},
	} {
		if _, ok := v.lib.Transformations[ref.name]; !ok {
			v.addError(field+"."+ref.field, ErrUnknownReference, "unknown transformation %q", ref.name)
		}
	}

	leftEP := v.resolveEndpoints(spec.Left, nil)
	rightEP := v.resolveEndpoints(spec.Right, nil)
	if leftEP == nil || rightEP == nil {
		return
	}
	if rightEP.source != leftEP.target || rightEP.target != leftEP.source {
		v.addError(field, ErrAdjunctionShape,
			"%s must run %s -> %s to oppose %s", spec.Right, leftEP.target, leftEP.source, spec.Left)
	}
	// The unit and counit endpoint composites are checked structurally by
	// cat.NewAdjunction at build time.
}
