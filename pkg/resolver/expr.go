package resolver

import (
	"reflect"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/types"
)

// ExprResolver implements Resolver with the expr expression language.
// Compiled programs are cached per source string, so repeated firings
// of the same rule skip compilation.
type ExprResolver struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

// NewExprResolver creates an ExprResolver with an empty program cache.
func NewExprResolver() *ExprResolver {
	return &ExprResolver{
		programs: make(map[string]*vm.Program),
	}
}

// EvaluateCondition compiles (or reuses) the expression and runs it
// against the keyword namespace. The result is coerced to a truth
// value: nil, false, zero numbers, empty strings and empty collections
// are false, everything else is true.
func (r *ExprResolver) EvaluateCondition(source string, kw Keywords) (bool, error) {
	program, err := r.compile(source)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrConditionEval, "failed to compile condition %q", source)
	}

	output, err := expr.Run(program, map[string]interface{}(kw))
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrConditionEval, "failed to evaluate condition %q", source)
	}

	result := truthy(output)

	logger := logging.GetLogger("resolver")
	logger.Debug().
		Str("condition", source).
		Bool("result", result).
		Msg("evaluated condition")

	return result, nil
}

// ResolveTemplate substitutes placeholders throughout the message: the
// hook name, the positional arguments and the keyword arguments,
// descending into nested maps and slices. The input message is never
// modified; resolution builds new structures.
func (r *ExprResolver) ResolveTemplate(msg types.Message, kw Keywords) (types.Message, error) {
	hook, err := r.resolveString(msg.Hook, kw)
	if err != nil {
		return types.Message{}, err
	}
	hookName, ok := hook.(string)
	if !ok {
		return types.Message{}, errors.Newf(errors.ErrTemplateResolve,
			"hook name %q resolved to non-string %T", msg.Hook, hook)
	}

	resolved := types.Message{Hook: hookName}

	if msg.Args != nil {
		args, err := r.resolveSlice(msg.Args, kw)
		if err != nil {
			return types.Message{}, err
		}
		resolved.Args = args
	}

	if msg.Kwargs != nil {
		kwargs, err := r.resolveMap(msg.Kwargs, kw)
		if err != nil {
			return types.Message{}, err
		}
		resolved.Kwargs = kwargs
	}

	return resolved, nil
}

// compile returns a cached program or compiles and caches a new one.
func (r *ExprResolver) compile(source string) (*vm.Program, error) {
	r.mu.RLock()
	program, exists := r.programs[source]
	r.mu.RUnlock()
	if exists {
		return program, nil
	}

	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.programs[source] = program
	r.mu.Unlock()

	return program, nil
}

// truthy mirrors the permissive truth rules conditions rely on.
func truthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return !rv.IsZero()
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
