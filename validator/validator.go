package validator

import (
	"errors"
	"sort"
	"strings"

	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/refs"
	"github.com/erraggy/oaslice/sliceerrors"
)

// Check identifies one of the two completeness checks.
type Check int

const (
	// CheckClosure is the internal-closure check over the output document.
	CheckClosure Check = iota
	// CheckFidelity is the source-fidelity check against the original document.
	CheckFidelity
)

// String returns the check's name.
func (c Check) String() string {
	if c == CheckFidelity {
		return sliceerrors.CheckFidelity
	}
	return sliceerrors.CheckClosure
}

// Result is the outcome of a single completeness check.
type Result struct {
	// Check identifies which check produced this result.
	Check Check
	// Passed is true when no offending references were found.
	Passed bool
	// Offending holds the canonical pointer strings of every offending
	// reference, sorted and deduplicated. Empty when Passed.
	Offending []string
}

// Err returns nil when the check passed, otherwise a
// *sliceerrors.CompletenessError carrying every offender.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	return &sliceerrors.CompletenessError{Check: r.Check.String(), Refs: r.Offending}
}

// Closure runs the internal-closure check: every $ref in the output must
// resolve within the output's own component store. Reference strings that
// cannot be classified at all are offenders too; nothing external belongs
// in an extracted document.
func Closure(output *parser.Document) (Result, error) {
	if output == nil {
		return Result{}, &sliceerrors.ConfigError{Option: "output document", Message: "closure check requires the assembled document"}
	}

	offenders := map[string]bool{}
	err := refs.Scan(output.Root(), func(raw, _ string) error {
		ref, err := refs.Classify(raw)
		if err != nil {
			offenders[raw] = true
			return nil
		}
		if _, ok := output.Component(ref); !ok {
			offenders[ref.String()] = true
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return newResult(CheckClosure, offenders), nil
}

// Fidelity runs the source-fidelity check: the seed scan and transitive
// closure are recomputed directly against the original document, and every
// reference in that closure must be present in the output's component store.
//
// The recomputation does not call into the resolver package, so the check
// cannot trivially agree with whatever the resolver produced.
func Fidelity(source *parser.Document, path, method string, output *parser.Document) (Result, error) {
	if source == nil {
		return Result{}, &sliceerrors.ConfigError{Option: "source document", Message: "fidelity check requires the original document"}
	}
	if output == nil {
		return Result{}, &sliceerrors.ConfigError{Option: "output document", Message: "fidelity check requires the assembled document"}
	}

	required, err := sourceClosure(source, path, strings.ToLower(method))
	if err != nil {
		return Result{}, err
	}

	offenders := map[string]bool{}
	for ref := range required {
		if _, ok := output.Component(ref); !ok {
			offenders[ref.String()] = true
		}
	}

	return newResult(CheckFidelity, offenders), nil
}

// Validate runs both checks and returns their results in order
// (closure, fidelity). An error is returned only for caller mistakes such as
// missing documents, an unknown selector, or source data the checks cannot
// even traverse, never for a failed check.
func Validate(source *parser.Document, path, method string, output *parser.Document) ([]Result, error) {
	closure, err := Closure(output)
	if err != nil {
		return nil, err
	}
	fidelity, err := Fidelity(source, path, method, output)
	if err != nil {
		return nil, err
	}
	return []Result{closure, fidelity}, nil
}

// FirstFailure returns the error of the first failed result, or nil when
// every check passed.
func FirstFailure(results []Result) error {
	for _, r := range results {
		if err := r.Err(); err != nil {
			return err
		}
	}
	return nil
}

// newResult builds a Result from an offender set.
func newResult(check Check, offenders map[string]bool) Result {
	if len(offenders) == 0 {
		return Result{Check: check, Passed: true}
	}
	out := make([]string, 0, len(offenders))
	for ref := range offenders {
		out = append(out, ref)
	}
	sort.Strings(out)
	return Result{Check: check, Passed: false, Offending: out}
}

// sourceClosure recomputes the full reference closure for one operation
// directly against the source document: path-item parameters, the operation
// body, security requirements by name, and everything transitively reachable
// from those seeds.
func sourceClosure(source *parser.Document, path, method string) (map[refs.Reference]bool, error) {
	operation, ok := source.Operation(path, method)
	if !ok {
		return nil, &sliceerrors.OperationNotFoundError{Path: path, Method: method}
	}

	closure := map[refs.Reference]bool{}
	var queue []refs.Reference

	enqueue := func(raw, location string) error {
		ref, err := refs.Classify(raw)
		if err != nil {
			var ce *sliceerrors.ClassificationError
			if errors.As(err, &ce) {
				ce.Location = location
			}
			return err
		}
		queue = append(queue, ref)
		return nil
	}

	if item, ok := source.PathItem(path); ok {
		if params, has := item["parameters"]; has {
			if err := refs.Scan(params, enqueue); err != nil {
				return nil, err
			}
		}
	}
	if err := refs.Scan(operation, enqueue); err != nil {
		return nil, err
	}
	for _, name := range securitySchemeNames(source, operation) {
		queue = append(queue, refs.Reference{Kind: refs.KindSecurityScheme, Name: name})
	}

	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		if closure[ref] {
			continue
		}
		closure[ref] = true

		body, ok := source.Component(ref)
		if !ok {
			return nil, &sliceerrors.MissingComponentError{
				Section: ref.Kind.Section(),
				Name:    ref.Name,
				Ref:     ref.String(),
			}
		}
		if err := refs.Scan(body, enqueue); err != nil {
			return nil, err
		}
	}

	return closure, nil
}

// securitySchemeNames lists the scheme names the operation requires, after
// applying the inheritance rule: an operation-level security field overrides
// the document's global requirements, even when it is an empty list.
func securitySchemeNames(source *parser.Document, operation map[string]any) []string {
	var requirements []any
	if raw, has := operation["security"]; has {
		requirements, _ = raw.([]any)
	} else if global, present := source.GlobalSecurity(); present {
		requirements = global
	}

	seen := map[string]bool{}
	var names []string
	for _, requirement := range requirements {
		reqMap, ok := requirement.(map[string]any)
		if !ok {
			continue
		}
		for name := range reqMap {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
