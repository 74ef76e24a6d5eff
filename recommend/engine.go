// Package recommend 是推荐编排器：按请求输入形态（已知用户 ×
// 购物车有无 × 浏览品类有无）选择信号并产出最终排序列表。
//
// 决策表（互斥、完备，首个命中生效）：
//
//	购物车 nil + 无品类 + 已知用户  → 纯协同过滤，目录展开，取前 4 组
//	购物车 nil + 有品类 + 未知用户  → 该品类热销目录原样返回
//	购物车 nil + 有品类 + 已知用户  → CF 目录展开截到 4 条，再追加品类目录
//	购物车非 nil（含空车）          → α·CF + β·MBA 混合打分
//	购物车 nil + 无品类 + 未知用户  → 前 4 个品类各取热销第一名
//
// 空而非 nil 的购物车走混合分支：分支依据是"有没有传购物车"，
// 不是车里有没有东西。
package recommend

import (
	"context"
	"sort"

	"github.com/rushteam/retailrec/catalogue"
	"github.com/rushteam/retailrec/cf"
	"github.com/rushteam/retailrec/core"
	"github.com/rushteam/retailrec/mba"
	"github.com/rushteam/retailrec/pipeline"
	"github.com/rushteam/retailrec/pkg/utils"
)

// 各分支的截断宽度：最多保留 4 组（或 4 条）打分结果再做目录展开。
const topGroups = 4

// 混合权重默认值。
const (
	DefaultAlphaHeavy     = 0.7 // 重度用户（不同物品数 > 阈值）的 CF 权重
	DefaultAlphaLight     = 0.3 // 轻度已知用户的 CF 权重
	DefaultHeavyThreshold = 5   // 重度用户的不同物品数阈值
)

// Engine 是推荐引擎：持有启动期构建的只读模型，按请求产出推荐。
// 所有字段构建后不再变更，可被并发请求共享。
type Engine struct {
	Rules     mba.Index
	CF        *cf.Model
	Catalogue *catalogue.Catalogue

	// TopN 是协同过滤召回条数，<= 0 时取 cf.DefaultTopN。
	TopN int

	// 混合权重参数，零值时取 Default*。
	AlphaHeavy     float64
	AlphaLight     float64
	HeavyThreshold int
}

// Recommend 产出一次推荐：展开后的物品标签平铺列表，可能为空。
// 未知用户、未知品类、空规则索引都走降级分支，不产生错误；
// 唯一的错误是 rctx 为 nil（边界输入非法）。
// 对相同的模型与输入，输出是确定的（纯函数）。
func (e *Engine) Recommend(_ context.Context, rctx *core.RecommendContext) ([]string, error) {
	if rctx == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "recommend: nil request")
	}

	known := e.CF.Known(rctx.CustomerName)
	hasCategory := rctx.Category != ""

	switch {
	case rctx.HasCart():
		// 购物车优先于品类
		return e.blended(rctx), nil
	case !hasCategory && known:
		return e.cfOnly(rctx.CustomerName), nil
	case hasCategory && !known:
		return append([]string(nil), e.Catalogue.Get(rctx.Category)...), nil
	case hasCategory && known:
		return e.cfWithCategory(rctx.CustomerName, rctx.Category), nil
	default:
		return e.globalFallback(), nil
	}
}

// cfOnly：CF 召回，每条经目录展开（未命中回退到物品本身），
// 取前 4 组拼接。
func (e *Engine) cfOnly(name string) []string {
	recs := e.CF.Recommend(name, e.TopN)
	if len(recs) > topGroups {
		recs = recs[:topGroups]
	}
	var out []string
	for _, r := range recs {
		out = append(out, e.expand(r.Item)...)
	}
	return out
}

// cfWithCategory：CF 召回经目录展开（未命中丢弃），平铺后截到
// 4 条，再不设上限地追加品类目录。
func (e *Engine) cfWithCategory(name, category string) []string {
	var out []string
	for _, r := range e.CF.Recommend(name, e.TopN) {
		out = append(out, e.Catalogue.Get(r.Item)...)
	}
	if len(out) > topGroups {
		out = out[:topGroups]
	}
	return append(out, e.Catalogue.Get(category)...)
}

// globalFallback：前 4 个品类（总购买行数降序）各取热销第一名。
func (e *Engine) globalFallback() []string {
	var out []string
	for _, category := range e.Catalogue.Categories() {
		if len(out) == topGroups {
			break
		}
		if top := e.Catalogue.Get(category); len(top) > 0 {
			out = append(out, top[0])
		}
	}
	return out
}

// blended：α·CF + β·MBA 混合打分。
//
//	α = 0.7（重度已知用户）/ 0.3（轻度已知用户）/ 0（未知用户），β = 1-α
//	MBA 信号：枚举购物车全部非空子集查规则索引，
//	          对不在车内的后件物品累加 置信度×提升度
//	两个分数族各自按最大值归一（空族最大值取 1，规避除零），
//	缺失值按 0 计；并集物品按最终分排序，取前 4 条做目录展开。
//
// 子集枚举是 O(2^车内不同物品数)，调用方应在边界限制购物车大小。
func (e *Engine) blended(rctx *core.RecommendContext) []string {
	alpha := 0.0
	if e.CF.Known(rctx.CustomerName) {
		if e.CF.DistinctItems(rctx.CustomerName) > e.heavyThreshold() {
			alpha = e.alphaHeavy()
		} else {
			alpha = e.alphaLight()
		}
	}
	beta := 1 - alpha

	cartSet := rctx.CartSet()
	cartItems := make([]string, 0, len(cartSet))
	for item := range cartSet {
		cartItems = append(cartItems, item)
	}
	sort.Strings(cartItems)

	// MBA 信号
	mbaScores := make(map[string]float64)
	for _, subset := range nonEmptySubsets(cartItems) {
		for _, cons := range e.Rules.Lookup(subset) {
			for _, item := range cons.Items {
				if _, inCart := cartSet[item]; inCart {
					continue
				}
				mbaScores[item] += cons.Confidence * cons.Lift
			}
		}
	}

	// CF 信号（仅已知用户）
	cfScores := make(map[string]float64)
	if e.CF.Known(rctx.CustomerName) {
		for _, s := range e.CF.Recommend(rctx.CustomerName, e.TopN) {
			cfScores[s.Item] = s.Score
		}
	}

	cfNorm := normalize(cfScores)
	mbaNorm := normalize(mbaScores)

	final := make(map[string]float64, len(cfNorm)+len(mbaNorm))
	for item := range cfNorm {
		final[item] = alpha*cfNorm[item] + beta*mbaNorm[item]
	}
	for item := range mbaNorm {
		if _, done := final[item]; !done {
			final[item] = alpha*cfNorm[item] + beta*mbaNorm[item]
		}
	}

	entries := make([]cf.Scored, 0, len(final))
	for item, score := range final {
		entries = append(entries, cf.Scored{Item: item, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Item < entries[j].Item
	})
	if len(entries) > topGroups {
		entries = entries[:topGroups]
	}

	// 截断发生在打分条目上，展开在截断之后。
	// 注意：这里沿用既有行为，用"被推荐物品标签"查品类目录——
	// 物品几乎不会命中品类键，绝大多数情况回退为物品本身。
	var out []string
	for _, entry := range entries {
		out = append(out, e.expand(entry.Item)...)
	}
	return out
}

// expand 用目录展开一个标签：命中品类键时返回其热销商品，
// 否则回退为标签本身。
func (e *Engine) expand(label string) []string {
	if top := e.Catalogue.Get(label); len(top) > 0 {
		return top
	}
	return []string{label}
}

// normalize 把分数族按自身最大值归一；空族最大值取 1，规避除零。
// 非空输入归一后最大值必为 1.0，全体落在 [0,1]。
func normalize(scores map[string]float64) map[string]float64 {
	max := 1.0
	first := true
	for _, v := range scores {
		if first || v > max {
			max = v
			first = false
		}
	}
	if max == 0 {
		max = 1.0
	}
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = v / max
	}
	return out
}

// nonEmptySubsets 按位掩码枚举有序切片的全部非空子集（顺序确定）。
func nonEmptySubsets(items []string) [][]string {
	n := len(items)
	subsets := make([][]string, 0, (1<<n)-1)
	for mask := 1; mask < 1<<n; mask++ {
		subset := make([]string, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, items[i])
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

func (e *Engine) alphaHeavy() float64 {
	if e.AlphaHeavy == 0 {
		return DefaultAlphaHeavy
	}
	return e.AlphaHeavy
}

func (e *Engine) alphaLight() float64 {
	if e.AlphaLight == 0 {
		return DefaultAlphaLight
	}
	return e.AlphaLight
}

func (e *Engine) heavyThreshold() int {
	if e.HeavyThreshold == 0 {
		return DefaultHeavyThreshold
	}
	return e.HeavyThreshold
}

// Node 形态：让引擎可以直接挂进 Pipeline，与过滤/截断节点组合。

func (e *Engine) Name() string        { return "engine.recommend" }
func (e *Engine) Kind() pipeline.Kind { return pipeline.KindEngine }

// Process 实现 pipeline.Node：忽略上游 items（引擎是链路源头），
// 把推荐列表包装成带解释标签的 Item 序列。
func (e *Engine) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	labels, err := e.Recommend(ctx, rctx)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Item, 0, len(labels))
	for _, label := range labels {
		it := core.NewItem(label)
		it.PutLabel("source", utils.Label{Value: e.branchName(rctx), Source: "engine"})
		out = append(out, it)
	}
	return out, nil
}

// branchName 返回命中的决策分支名，仅用于解释标签。
func (e *Engine) branchName(rctx *core.RecommendContext) string {
	known := e.CF.Known(rctx.CustomerName)
	switch {
	case rctx.HasCart():
		return "blended"
	case rctx.Category == "" && known:
		return "cf"
	case rctx.Category != "" && !known:
		return "catalogue"
	case rctx.Category != "" && known:
		return "cf+catalogue"
	default:
		return "fallback"
	}
}

var _ pipeline.Node = (*Engine)(nil)
