// Package retailrec 是一个零售子品类推荐引擎（Retail Recommender）。
//
// 设计要点：
// - 决策表驱动: 按请求输入形态（已知用户 × 购物车 × 品类）选择信号源
// - 三路信号: 协同过滤（余弦相似度）+ 购物篮关联规则 + 品类热销兜底
// - Pipeline-first: 引擎、过滤、截断都是 Node，可插拔组合
package retailrec

import "github.com/rushteam/retailrec/pipeline"

// 轻量 facade：便于用户直接 import "retailrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindEngine = pipeline.KindEngine
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
