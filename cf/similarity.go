// Package cf 是协同过滤模块：把每个客户的终身购买聚合成一行
// 出现向量，计算客户两两余弦相似度，再用相似客户的"加权投票"
// 给目标客户没买过的物品打分。
package cf

import (
	"math"

	"github.com/rushteam/retailrec/encode"
)

// Model 是协同过滤底座：客户 × 物品出现表 + 客户相似度矩阵。
// 启动期构建一次，之后只读，可被并发请求共享。
type Model struct {
	customers []string
	index     map[string]int
	table     *encode.Table
	sim       [][]float64
}

// BuildModel 由客户名与对应的终身物品序列构建模型。
// 两个切片按下标对齐（见 dataset.CustomerBaskets）。
func BuildModel(customers []string, baskets [][]string) *Model {
	table := encode.NewEncoder().Fit(baskets).Transform(baskets)

	index := make(map[string]int, len(customers))
	for i, name := range customers {
		index[name] = i
	}

	n := len(customers)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := cosine(table.Row(i), table.Row(j))
			sim[i][j] = s
			sim[j][i] = s
		}
	}

	return &Model{
		customers: append([]string(nil), customers...),
		index:     index,
		table:     table,
		sim:       sim,
	}
}

// cosine 计算两个出现向量的余弦相似度。
// 任一向量全零时数学上是 0/0，约定返回 0.0，绝不向上游传播 NaN。
func cosine(a, b []bool) float64 {
	var dot, na, nb int
	for i := range a {
		if a[i] && b[i] {
			dot++
		}
		if a[i] {
			na++
		}
		if b[i] {
			nb++
		}
	}
	if na == 0 || nb == 0 {
		return 0.0
	}
	return float64(dot) / (math.Sqrt(float64(na)) * math.Sqrt(float64(nb)))
}

// Known 判断客户是否在训练集中出现过——"已知用户"谓词。
func (m *Model) Known(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Customers 返回训练集客户名（升序，与矩阵行对齐）。
func (m *Model) Customers() []string {
	return m.customers
}

// Items 返回物品词表（字典序）。
func (m *Model) Items() []string {
	return m.table.Columns()
}

// Similarity 返回两个客户的余弦相似度；任一客户未知时返回 0。
func (m *Model) Similarity(a, b string) float64 {
	i, ok := m.index[a]
	if !ok {
		return 0
	}
	j, ok := m.index[b]
	if !ok {
		return 0
	}
	return m.sim[i][j]
}

// DistinctItems 返回客户终身购买过的不同物品数（出现行的置位数）。
// 混合打分的 α 权重以它为输入。未知客户返回 0。
func (m *Model) DistinctItems(name string) int {
	i, ok := m.index[name]
	if !ok {
		return 0
	}
	return m.table.RowSum(i)
}

// Purchased 判断客户是否买过某物品；未知客户恒为 false。
func (m *Model) Purchased(name, item string) bool {
	i, ok := m.index[name]
	if !ok {
		return false
	}
	return m.table.Contains(i, item)
}
