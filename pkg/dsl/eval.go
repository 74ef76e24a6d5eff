// Package dsl 提供基于 CEL (Common Expression Language) 的布尔表达式
// 求值，用于配置驱动的结果过滤（比如按解释标签或物品名剔除候选）。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/retailrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的表达式，可跨请求复用（编译一次，多次求值）。
//
// 表达式语法（CEL 标准语法）：
//   - item.id == "Chairs"
//   - item.score > 0.7
//   - label.source == "fallback"
//   - rctx.category == "Binders" && item.id != "Paper"
type Program struct {
	prg cel.Program
}

// Compile 编译表达式。空表达式返回 nil Program（恒为 false）。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return nil, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	return &Program{prg: prg}, nil
}

// Eval 对一个候选物品求值，返回布尔结果。
// 表达式必须产出布尔值，否则报错。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if p == nil {
		return false, nil
	}

	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 时 CEL 会报错；表达式应使用
		// label.key != null 检查存在性
		return false, fmt.Errorf("eval error: %v", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]interface{} {
	labels := make(map[string]interface{}, len(item.Labels))
	labelAccessor := make(map[string]interface{}, len(item.Labels))
	for k, v := range item.Labels {
		labels[k] = map[string]interface{}{"value": v.Value, "source": v.Source}
		labelAccessor[k] = v.Value
	}

	input := map[string]interface{}{
		"item": map[string]interface{}{
			"id":     item.ID,
			"score":  item.Score,
			"labels": labels,
		},
		"label": labelAccessor,
	}
	if rctx != nil {
		input["rctx"] = map[string]interface{}{
			"customer_name": rctx.CustomerName,
			"cart":          rctx.Cart,
			"category":      rctx.Category,
		}
	} else {
		input["rctx"] = map[string]interface{}{}
	}
	return input
}
