// Package mba 是购物篮分析（Market Basket Analysis）模块：
// 从每日客户篮子中挖掘频繁项集，派生关联规则，并按前件建索引
// 供请求时快速查找。
package mba

import (
	"sort"
	"strings"

	"github.com/rushteam/retailrec/encode"
)

// Itemset 是一个频繁项集及其支持度（包含它的事务占比）。
// Items 始终按字典序存放。
type Itemset struct {
	Items   []string
	Support float64
}

// itemsetKey 是项集的规范化键：排序后以单元分隔符拼接。
// 子品类标签不含控制字符，等价集合必然得到同一个键。
func itemsetKey(sorted []string) string {
	return strings.Join(sorted, "\x1f")
}

// Key 返回物品集合的规范化键（与输入顺序无关）。
func Key(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return itemsetKey(sorted)
}

// FrequentItemsets 逐层枚举支持度 ≥ minSupport 的项集（apriori）。
// 返回顺序确定：先按项集大小，再按字典序。空输入返回空结果。
func FrequentItemsets(txns [][]string, minSupport float64) []Itemset {
	if len(txns) == 0 {
		return nil
	}
	table := encode.NewEncoder().Fit(txns).Transform(txns)
	total := float64(table.Len())

	// L1：单物品
	var level [][]string
	for _, item := range table.Columns() {
		level = append(level, []string{item})
	}

	var out []Itemset
	frequent := make(map[string]bool)

	for len(level) > 0 {
		var next [][]string
		var kept [][]string
		for _, candidate := range level {
			count := 0
			for i := 0; i < table.Len(); i++ {
				if rowContains(table, i, candidate) {
					count++
				}
			}
			support := float64(count) / total
			if support >= minSupport {
				out = append(out, Itemset{Items: candidate, Support: support})
				frequent[itemsetKey(candidate)] = true
				kept = append(kept, candidate)
			}
		}
		next = joinCandidates(kept, frequent)
		level = next
	}
	return out
}

// rowContains 判断第 i 行是否同时包含 items 的所有物品。
func rowContains(table *encode.Table, i int, items []string) bool {
	for _, item := range items {
		if !table.Contains(i, item) {
			return false
		}
	}
	return true
}

// joinCandidates 由 k 层的频繁项集生成 k+1 层候选：
// 前 k-1 项相同的两个项集合并，并剪掉含非频繁子集的候选。
// 输入项集有序，因此产出也保持字典序。
func joinCandidates(level [][]string, frequent map[string]bool) [][]string {
	var next [][]string
	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			a, b := level[i], level[j]
			k := len(a)
			if !samePrefix(a, b, k-1) {
				continue
			}
			// 层内字典序保证 b 的末项大于 a 的末项
			candidate := make([]string, 0, k+1)
			candidate = append(candidate, a...)
			candidate = append(candidate, b[k-1])
			if hasInfrequentSubset(candidate, frequent) {
				continue
			}
			next = append(next, candidate)
		}
	}
	return next
}

func samePrefix(a, b []string, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// hasInfrequentSubset 检查候选的所有 k-1 子集是否都频繁（apriori 剪枝）。
func hasInfrequentSubset(candidate []string, frequent map[string]bool) bool {
	if len(candidate) <= 2 {
		return false // 1-子集已在上一层保证频繁
	}
	sub := make([]string, 0, len(candidate)-1)
	for skip := range candidate {
		sub = sub[:0]
		for i, item := range candidate {
			if i != skip {
				sub = append(sub, item)
			}
		}
		if !frequent[itemsetKey(sub)] {
			return true
		}
	}
	return false
}
