// Package catalogue 构建品类热销目录：每个子品类取购买次数最高的
// 前 2 个商品名。它是整条链路的冷启动兜底——未知用户、未知品类、
// 空信号都会降级到这里。
package catalogue

import (
	"sort"

	"github.com/rushteam/retailrec/dataset"
)

// TopPerCategory 是每个子品类保留的热销商品数。
const TopPerCategory = 2

// Catalogue 是子品类 → 热销商品名列表的只读映射。
// 品类顺序固定为总购买行数降序（次数相同按首次出现顺序），
// 全局兜底分支依赖这个顺序。
type Catalogue struct {
	order []string
	top   map[string][]string
}

// Build 从订单行统计各子品类内每个商品的购买次数，取前 2。
// 并列时按次数降序、商品名升序，保证同样输入产出同样结果。
func Build(rows []dataset.Row) *Catalogue {
	type catStat struct {
		name  string
		count int
		first int // 首次出现的行号，用于并列时保持源顺序
	}
	catIndex := make(map[string]*catStat)
	cats := make([]*catStat, 0)
	products := make(map[string]map[string]int)

	for i, r := range rows {
		st, ok := catIndex[r.SubCategory]
		if !ok {
			st = &catStat{name: r.SubCategory, first: i}
			catIndex[r.SubCategory] = st
			cats = append(cats, st)
			products[r.SubCategory] = make(map[string]int)
		}
		st.count++
		products[r.SubCategory][r.ProductName]++
	}

	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].count != cats[j].count {
			return cats[i].count > cats[j].count
		}
		return cats[i].first < cats[j].first
	})

	c := &Catalogue{
		order: make([]string, 0, len(cats)),
		top:   make(map[string][]string, len(cats)),
	}
	for _, st := range cats {
		c.order = append(c.order, st.name)
		c.top[st.name] = topProducts(products[st.name], TopPerCategory)
	}
	return c
}

func topProducts(counts map[string]int, n int) []string {
	type productCount struct {
		name  string
		count int
	}
	all := make([]productCount, 0, len(counts))
	for name, count := range counts {
		all = append(all, productCount{name: name, count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].name < all[j].name
	})
	if len(all) > n {
		all = all[:n]
	}
	out := make([]string, len(all))
	for i, p := range all {
		out[i] = p.name
	}
	return out
}

// Get 返回子品类的热销商品名（至多 2 个）。
// 未知品类返回 nil——按约定这是"空列表"，不是错误。
func (c *Catalogue) Get(category string) []string {
	return c.top[category]
}

// Categories 返回全部子品类，按总购买行数降序。
func (c *Catalogue) Categories() []string {
	return c.order
}

// Len 返回子品类数。
func (c *Catalogue) Len() int {
	return len(c.order)
}
