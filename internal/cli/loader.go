package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/qed/internal/compiler"
)

// LoadMode selects the error policy while compiling presentations.
type LoadMode int

const (
	// LoadModeFailFast stops at the first broken declaration.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll keeps going and reports every defect at once.
	LoadModeCollectAll
)

// LoadResult is a compiled presentation directory: the library skeleton plus
// the raw CUE value it came from.
type LoadResult struct {
	Spec      *compiler.LibrarySpec
	CUEValue  cue.Value
	FileCount int
}

// LoadError is a command-level loading failure with a stable code and, when
// the failure came out of CUE, a source position.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// kindOrder fixes the compile order of the top-level presentation kinds.
var kindOrder = []string{"category", "functor", "transformation", "adjunction"}

// LoadPresentations compiles every CUE presentation under dir into a library
// skeleton. The directory is loaded as one CUE instance, so declarations may
// be split across files however the author likes.
func LoadPresentations(dir string, mode LoadMode) (*LoadResult, []error) {
	if fail := checkPresentationDir(dir); fail != nil {
		return nil, []error{fail}
	}

	cueFiles, err := FindCUEFiles(dir)
	switch {
	case err != nil:
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	case len(cueFiles) == 0:
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	if inst := instances[0]; inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := cuecontext.New().BuildInstance(instances[0])
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{
		Spec:      compiler.NewLibrarySpec(),
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	var errs []error
	for _, kind := range kindOrder {
		if stop := compileKind(value, kind, result.Spec, mode, &errs); stop {
			return result, errs
		}
	}

	if result.Spec.Empty() && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no categorical structures found in presentations"})
	}

	return result, errs
}

func checkPresentationDir(dir string) *LoadError {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("presentation directory not found: %s", dir)}
	case err != nil:
		return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing presentation directory: %v", err)}
	case !info.IsDir():
		return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}
	return nil
}

// compileKind compiles every declaration under one top-level kind into the
// spec. Returns true when fail-fast mode hit an error and loading should
// stop.
func compileKind(value cue.Value, kind string, spec *compiler.LibrarySpec, mode LoadMode, errs *[]error) bool {
	kindVal := value.LookupPath(cue.ParsePath(kind))
	if !kindVal.Exists() {
		return false
	}

	iter, iterErr := kindVal.Fields()
	if iterErr != nil {
		*errs = append(*errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating %s declarations: %v", kind, iterErr)})
		return mode == LoadModeFailFast
	}

	for iter.Next() {
		var compileErr error
		switch kind {
		case "category":
			s, err := compiler.CompileCategory(iter.Value())
			if err == nil {
				spec.Categories[s.Name] = s
			}
			compileErr = err
		case "functor":
			s, err := compiler.CompileFunctor(iter.Value())
			if err == nil {
				spec.Functors[s.Name] = s
			}
			compileErr = err
		case "transformation":
			s, err := compiler.CompileTransformation(iter.Value())
			if err == nil {
				spec.Transformations[s.Name] = s
			}
			compileErr = err
		case "adjunction":
			s, err := compiler.CompileAdjunction(iter.Value())
			if err == nil {
				spec.Adjunctions[s.Name] = s
			}
			compileErr = err
		}

		if compileErr != nil {
			*errs = append(*errs, convertCompileError(compileErr, kind+"."+iter.Label()))
			if mode == LoadModeFailFast {
				return true
			}
		}
	}
	return false
}

// FindCUEFiles returns every .cue file under dir, recursively.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError lifts a compiler error into a LoadError, keeping the
// CUE position when one is attached.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeCompile,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Command-level error codes. Validation defects inside otherwise loadable
// presentations use the compiler's E1xx codes instead.
const (
	ErrCodeGeneric     = "E001" // unknown error
	ErrCodeScanError   = "E002" // directory scan error
	ErrCodeNoFiles     = "E003" // no CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // file write error
	ErrCodeCompile     = "E008" // presentation parse error
	ErrCodeStore       = "E009" // ledger access error
)
