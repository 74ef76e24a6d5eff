package pipeline

import (
	"context"

	"github.com/rushteam/retailrec/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindEngine Kind = "engine" // 引擎阶段：按决策表产出推荐列表
	KindFilter Kind = "filter" // 过滤阶段：剔除缺货/命中表达式的候选
	KindReRank Kind = "rerank" // 重排阶段：结果截断等最终修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态，方便引擎生成、
// Filter 剔除、截断等操作在同一条链上组合。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
