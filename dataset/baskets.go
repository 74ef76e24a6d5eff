package dataset

import "sort"

// Basket 是一个 (日期, 客户) 维度的购买篮子：当天该客户买到的子品类序列。
// 允许重复（同日多次购买同一子品类），出现/缺失语义由编码层处理。
type Basket struct {
	Date     string // 规整为 2006-01-02
	Customer string
	Items    []string
}

// DailyBaskets 把订单行按 (日期, 客户名) 分组成篮子。
// 排序：日期升序，同日内客户名升序——与训练产物的确定性要求一致。
func DailyBaskets(rows []Row) []Basket {
	type key struct {
		date     string
		customer string
	}
	grouped := make(map[key][]string)
	for _, r := range rows {
		k := key{date: r.OrderDate.Format("2006-01-02"), customer: r.CustomerName}
		grouped[k] = append(grouped[k], r.SubCategory)
	}

	keys := make([]key, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].customer < keys[j].customer
	})

	baskets := make([]Basket, 0, len(keys))
	for _, k := range keys {
		baskets = append(baskets, Basket{Date: k.date, Customer: k.customer, Items: grouped[k]})
	}
	return baskets
}

// Transactions 抽取篮子中的物品序列，作为规则挖掘的输入。
func Transactions(baskets []Basket) [][]string {
	txns := make([][]string, len(baskets))
	for i, b := range baskets {
		txns[i] = b.Items
	}
	return txns
}

// CustomerBaskets 把每个客户的历史篮子合并成一笔终身事务
// （按日期顺序拼接）。返回客户名（升序）与对应的终身物品序列，
// 两个切片按下标对齐——这是协同过滤相似度模型的输入。
func CustomerBaskets(baskets []Basket) ([]string, [][]string) {
	lifetime := make(map[string][]string)
	for _, b := range baskets {
		lifetime[b.Customer] = append(lifetime[b.Customer], b.Items...)
	}

	customers := make([]string, 0, len(lifetime))
	for name := range lifetime {
		customers = append(customers, name)
	}
	sort.Strings(customers)

	txns := make([][]string, len(customers))
	for i, name := range customers {
		txns[i] = lifetime[name]
	}
	return customers, txns
}
