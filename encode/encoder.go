// Package encode 把事务序列（每笔交易是一组子品类标签）编码成
// 布尔"物品出现矩阵"：一行一笔交易，一列一个物品。
// 规则挖掘与协同过滤都以此为底层数据结构。
package encode

import "sort"

// Encoder 负责固定列词表并做事务编码。
//
// 约束：列集合在 Fit 时一次性确定（字典序，保证确定性），之后不再扩宽；
// Transform 遇到词表外的物品时静默丢弃。
type Encoder struct {
	columns []string
	index   map[string]int
}

func NewEncoder() *Encoder {
	return &Encoder{index: make(map[string]int)}
}

// Fit 从事务集合收集全部不同物品，按字典序固定列词表。
// 返回自身，支持 Fit(...).Transform(...) 链式调用。
func (e *Encoder) Fit(txns [][]string) *Encoder {
	seen := make(map[string]struct{})
	for _, txn := range txns {
		for _, item := range txn {
			seen[item] = struct{}{}
		}
	}
	e.columns = make([]string, 0, len(seen))
	for item := range seen {
		e.columns = append(e.columns, item)
	}
	sort.Strings(e.columns)
	e.index = make(map[string]int, len(e.columns))
	for i, item := range e.columns {
		e.index[item] = i
	}
	return e
}

// Columns 返回固定的列词表（字典序）。
func (e *Encoder) Columns() []string {
	return e.columns
}

// Transform 把事务编码成出现矩阵：一行对应一笔输入事务。
// 重复物品只置位一次（出现/缺失语义）；词表外的物品被丢弃。
func (e *Encoder) Transform(txns [][]string) *Table {
	rows := make([][]bool, len(txns))
	for i, txn := range txns {
		row := make([]bool, len(e.columns))
		for _, item := range txn {
			if j, ok := e.index[item]; ok {
				row[j] = true
			}
		}
		rows[i] = row
	}
	return &Table{columns: e.columns, index: e.index, rows: rows}
}

// Table 是物品出现矩阵：行 = 事务，列 = 物品。构建后只读。
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]bool
}

// Columns 返回列词表。
func (t *Table) Columns() []string { return t.columns }

// Len 返回行数。
func (t *Table) Len() int { return len(t.rows) }

// Row 返回第 i 行的出现向量。调用方不得修改。
func (t *Table) Row(i int) []bool { return t.rows[i] }

// Contains 判断第 i 行是否包含指定物品；词表外物品恒为 false。
func (t *Table) Contains(i int, item string) bool {
	j, ok := t.index[item]
	if !ok {
		return false
	}
	return t.rows[i][j]
}

// RowSum 返回第 i 行置位的列数，即该事务包含的不同已知物品数。
func (t *Table) RowSum(i int) int {
	n := 0
	for _, v := range t.rows[i] {
		if v {
			n++
		}
	}
	return n
}
