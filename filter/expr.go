package filter

import (
	"context"

	"github.com/rushteam/retailrec/core"
	"github.com/rushteam/retailrec/pkg/dsl"
)

// ExprFilter 按 CEL 表达式剔除候选：表达式为 true 的物品被移除。
// 表达式在构建时编译一次，跨请求复用。
//
// 示例：
//   - `item.id == "Phones"`
//   - `label.source == "fallback" && rctx.category != ""`
type ExprFilter struct {
	expr string
	prg  *dsl.Program
}

// NewExprFilter 编译表达式并创建过滤器。空表达式得到恒不过滤的实例。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{expr: expr, prg: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return f.prg.Eval(item, rctx)
}
