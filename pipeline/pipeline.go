// Package pipeline 把推荐服务链路拆成可组合的 Node 链：
// 引擎 → 过滤 → 截断。引擎产出的排序列表是合同行为，
// 过滤/截断是部署侧可选的修饰。
package pipeline

import (
	"context"

	"github.com/rushteam/retailrec/core"
)

// Pipeline 按顺序执行 Node 链。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
