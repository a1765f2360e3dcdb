package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError is a presentation parse error with CUE source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}

// specName extracts a spec's name from its CUE struct label.
func specName(v cue.Value) string {
	labels := v.Path().Selectors()
	if len(labels) == 0 {
		return ""
	}
	return labels[len(labels)-1].String()
}

// CompileCategory parses a CUE value into a CategorySpec. The value is the
// category struct itself, e.g. the result of looking up "category.Walking":
//
//	category: Walking: {
//	    objects: ["A", "B"]
//	    arrows: f: {dom: "A", cod: "B"}
//	    compose: {}
//	}
func CompileCategory(v cue.Value) (*CategorySpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &CategorySpec{
		Name:    specName(v),
		Arrows:  make(map[string]ArrowSpec),
		Compose: make(map[string]map[string]string),
	}

	objectsVal := v.LookupPath(cue.ParsePath("objects"))
	if !objectsVal.Exists() {
		return nil, &CompileError{
			Field:   "objects",
			Message: "objects list is required",
			Pos:     v.Pos(),
		}
	}
	objects, err := stringList(objectsVal)
	if err != nil {
		return nil, err
	}
	spec.Objects = objects

	arrowsVal := v.LookupPath(cue.ParsePath("arrows"))
	if arrowsVal.Exists() {
		iter, err := arrowsVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			name := iter.Label()
			arrowVal := iter.Value()
			dom, err := requiredString(arrowVal, "dom")
			if err != nil {
				return nil, err
			}
			cod, err := requiredString(arrowVal, "cod")
			if err != nil {
				return nil, err
			}
			spec.Arrows[name] = ArrowSpec{Dom: dom, Cod: cod}
		}
	}

	composeVal := v.LookupPath(cue.ParsePath("compose"))
	if composeVal.Exists() {
		iter, err := composeVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			f := iter.Label()
			row := make(map[string]string)
			rowIter, err := iter.Value().Fields()
			if err != nil {
				return nil, formatCUEError(err)
			}
			for rowIter.Next() {
				h, err := rowIter.Value().String()
				if err != nil {
					return nil, formatCUEError(err)
				}
				row[rowIter.Label()] = h
			}
			spec.Compose[f] = row
		}
	}

	capsVal := v.LookupPath(cue.ParsePath("capabilities"))
	if capsVal.Exists() {
		caps, err := stringList(capsVal)
		if err != nil {
			return nil, err
		}
		spec.Capabilities = caps
	}

	return spec, nil
}

// CompileFunctor parses a CUE value into a FunctorSpec. Three forms are
// accepted:
//
//	functor: F: {source: "C", target: "D", objects: {...}, arrows: {...}}
//	functor: IdC: {identity: "C"}
//	functor: GF: {compose: ["F", "G"]}
func CompileFunctor(v cue.Value) (*FunctorSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &FunctorSpec{Name: specName(v)}

	identityVal := v.LookupPath(cue.ParsePath("identity"))
	composeVal := v.LookupPath(cue.ParsePath("compose"))
	sourceVal := v.LookupPath(cue.ParsePath("source"))

	forms := 0
	if identityVal.Exists() {
		forms++
	}
	if composeVal.Exists() {
		forms++
	}
	if sourceVal.Exists() {
		forms++
	}
	if forms != 1 {
		return nil, &CompileError{
			Field:   "functor." + spec.Name,
			Message: "exactly one of identity, compose, or source/target/objects/arrows is required",
			Pos:     v.Pos(),
		}
	}

	if identityVal.Exists() {
		name, err := identityVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Identity = name
		return spec, nil
	}

	if composeVal.Exists() {
		chain, err := stringList(composeVal)
		if err != nil {
			return nil, err
		}
		if len(chain) < 2 {
			return nil, &CompileError{
				Field:   "functor." + spec.Name + ".compose",
				Message: "composite form needs at least two functor names",
				Pos:     composeVal.Pos(),
			}
		}
		spec.Compose = chain
		return spec, nil
	}

	source, err := requiredString(v, "source")
	if err != nil {
		return nil, err
	}
	target, err := requiredString(v, "target")
	if err != nil {
		return nil, err
	}
	spec.Source = source
	spec.Target = target

	spec.Objects, err = stringMap(v, "objects")
	if err != nil {
		return nil, err
	}
	if spec.Objects == nil {
		return nil, &CompileError{
			Field:   "functor." + spec.Name + ".objects",
			Message: "explicit form requires an objects map",
			Pos:     v.Pos(),
		}
	}
	spec.Arrows, err = stringMap(v, "arrows")
	if err != nil {
		return nil, err
	}
	if spec.Arrows == nil {
		spec.Arrows = make(map[string]string)
	}

	return spec, nil
}

// CompileTransformation parses a CUE value into a TransformationSpec:
//
//	transformation: alpha: {source: "F", target: "G", components: {A: "f"}}
func CompileTransformation(v cue.Value) (*TransformationSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &TransformationSpec{Name: specName(v)}

	source, err := requiredString(v, "source")
	if err != nil {
		return nil, err
	}
	target, err := requiredString(v, "target")
	if err != nil {
		return nil, err
	}
	spec.Source = source
	spec.Target = target

	spec.Components, err = stringMap(v, "components")
	if err != nil {
		return nil, err
	}
	if spec.Components == nil {
		return nil, &CompileError{
			Field:   "transformation." + spec.Name + ".components",
			Message: "components map is required",
			Pos:     v.Pos(),
		}
	}

	return spec, nil
}

// CompileAdjunction parses a CUE value into an AdjunctionSpec:
//
//	adjunction: FG: {left: "F", right: "G", unit: "eta", counit: "eps"}
func CompileAdjunction(v cue.Value) (*AdjunctionSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &AdjunctionSpec{Name: specName(v)}
	for _, field := range []struct {
		name string
		dst  *string
	}{
		{"left", &spec.Left},
		{"right", &spec.Right},
		{"unit", &spec.Unit},
		{"counit", &spec.Counit},
	} {
		val, err := requiredString(v, field.name)
		if err != nil {
			return nil, err
		}
		*field.dst = val
	}

	return spec, nil
}

// CompileLibrary parses every spec a CUE value declares under the four
// top-level kind structs: category, functor, transformation, adjunction.
// Kinds that are absent compile to empty maps.
func CompileLibrary(v cue.Value) (*LibrarySpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	lib := NewLibrarySpec()

	categories := v.LookupPath(cue.ParsePath("category"))
	if categories.Exists() {
		iter, err := categories.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			spec, err := CompileCategory(iter.Value())
			if err != nil {
				return nil, err
			}
			lib.Categories[spec.Name] = spec
		}
	}

	functors := v.LookupPath(cue.ParsePath("functor"))
	if functors.Exists() {
		iter, err := functors.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			spec, err := CompileFunctor(iter.Value())
			if err != nil {
				return nil, err
			}
			lib.Functors[spec.Name] = spec
		}
	}

	transformations := v.LookupPath(cue.ParsePath("transformation"))
	if transformations.Exists() {
		iter, err := transformations.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			spec, err := CompileTransformation(iter.Value())
			if err != nil {
				return nil, err
			}
			lib.Transformations[spec.Name] = spec
		}
	}

	adjunctions := v.LookupPath(cue.ParsePath("adjunction"))
	if adjunctions.Exists() {
		iter, err := adjunctions.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			spec, err := CompileAdjunction(iter.Value())
			if err != nil {
				return nil, err
			}
			lib.Adjunctions[spec.Name] = spec
		}
	}

	return lib, nil
}

// requiredString looks up a required string field.
func requiredString(v cue.Value, field string) (string, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fieldVal.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// stringList reads a CUE list of strings.
func stringList(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// stringMap reads an optional CUE struct of string fields. A missing field
// returns nil with no error so callers can tell absence from emptiness.
func stringMap(v cue.Value, field string) (map[string]string, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return nil, nil
	}
	iter, err := fieldVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	out := make(map[string]string)
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out[iter.Label()] = s
	}
	return out, nil
}
