package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/wfm/lang"
	"github.com/ardnew/wfm/log"
)

// Check compiles a configuration string and evaluates a boolean expression
// over the result. The command fails unless the expression is true.
//
// The expression sees these variables:
//
//	Env          map[string]string  compiled environment
//	Args         []string           compiled arguments
//	Input        string             configuration string
//	Fingerprint  string             result fingerprint
//
// For example:
//
//	wfm check cdo.dbg '"--enable-debug" in Args && Env.CC == "clang"'
type Check struct {
	Quiet bool `help:"Print nothing, only set the exit status" short:"q"`

	Config string `arg:"" help:"Configuration string to compile" name:"config"`
	Expr   string `arg:"" help:"Boolean expression to evaluate"  name:"expr"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	res, err := compile(ctx, c.Config)
	if err != nil {
		return err
	}

	ok, err := evaluate(c.Expr, res)
	if err != nil {
		return err
	}

	if !c.Quiet {
		fmt.Fprintln(stdout(ctx), ok)
	}

	if !ok {
		return ErrCheckFailed.With(
			slog.String("input", c.Config),
			slog.String("expr", c.Expr),
		)
	}

	return nil
}

// checkEnv returns the variables visible to a check expression.
func checkEnv(res *lang.Result) map[string]any {
	args := res.Arguments
	if args == nil {
		args = []string{}
	}

	return map[string]any{
		"Env":         res.Environment.Map(),
		"Args":        args,
		"Input":       res.Input,
		"Fingerprint": res.Fingerprint(),
	}
}

// evaluate compiles source as a boolean expression and runs it over res.
func evaluate(source string, res *lang.Result) (bool, error) {
	env := checkEnv(res)

	program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, ErrExpression.
			With(slog.String("expr", source)).
			Wrap(err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, ErrExpression.
			With(slog.String("expr", source)).
			Wrap(err)
	}

	log.Debug("evaluated", slog.String("expr", source), slog.Any("result", out))

	ok, _ := out.(bool)

	return ok, nil
}
