// Package rerank 提供链路末端的结果修饰节点。
package rerank

import (
	"context"

	"github.com/rushteam/retailrec/core"
	"github.com/rushteam/retailrec/pipeline"
)

// TopNNode 截取前 N 个候选，用于限制响应条数。
// 引擎各分支自带截断语义（取前 4 组），这里是传输层额外的总量上限。
type TopNNode struct {
	// N 要保留的条数。N <= 0 或候选不足 N 时不截断。
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
