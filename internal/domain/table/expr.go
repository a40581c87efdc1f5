package table

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// exprEngine compiles CEL filter expressions over a fixed set of field keys.
// Programs are cached per expression text; cel.Program is safe for
// concurrent evaluation.
type exprEngine struct {
	keys []string

	once   sync.Once
	env    *cel.Env
	envErr error

	programs sync.Map // string -> cel.Program
}

func newExprEngine(keys []string) *exprEngine {
	return &exprEngine{keys: keys}
}

func (e *exprEngine) environment() (*cel.Env, error) {
	e.once.Do(func() {
		opts := make([]cel.EnvOption, 0, len(e.keys)+1)
		opts = append(opts, cel.CrossTypeNumericComparisons(true))
		for _, k := range e.keys {
			opts = append(opts, cel.Variable(k, cel.DynType))
		}
		e.env, e.envErr = cel.NewEnv(opts...)
	})
	return e.env, e.envErr
}

func (e *exprEngine) compile(expr string) (cel.Program, error) {
	if cached, ok := e.programs.Load(expr); ok {
		return cached.(cel.Program), nil
	}

	env, err := e.environment()
	if err != nil {
		return nil, fmt.Errorf("filter env: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("filter program: %w", err)
	}

	e.programs.Store(expr, prg)
	return prg, nil
}

func (e *exprEngine) check(expr string) error {
	_, err := e.compile(expr)
	return err
}

// program returns the compiled expression, or nil when expr is empty or
// does not compile. A nil program matches nothing.
func (e *exprEngine) program(expr string) cel.Program {
	if expr == "" {
		return nil
	}
	prg, err := e.compile(expr)
	if err != nil {
		return nil
	}
	return prg
}

// eval reports whether prg yields true for vars. Errors and non-boolean
// results count as no match.
func (e *exprEngine) eval(prg cel.Program, vars map[string]any) bool {
	if prg == nil {
		return false
	}
	out, _, err := prg.Eval(vars)
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
