package core

import "github.com/rushteam/retailrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：物品标签、分数、解释标签。
// ID 是零售子品类标签（如 "Binders"、"Paper"）；Score 用于排序决策，
// Labels 用于解释与观测（来源分支、过滤原因等）。
type Item struct {
	ID     string
	Score  float64
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
