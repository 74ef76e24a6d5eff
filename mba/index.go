package mba

// Consequent 是规则索引里前件对应的一条候选：后件物品、置信度、提升度。
type Consequent struct {
	Items      []string
	Confidence float64
	Lift       float64
}

// Index 是规则索引：规范化前件键 → 后件列表。
// 列表按构建时的插入顺序存放（规则已按置信度升序排好，
// 因此桶尾是该前件下置信度最高的条目）；除分组正确性外不承诺其他顺序。
type Index map[string][]Consequent

// BuildIndex 把规则按前件分组。传入的规则应来自 Mine（置信度升序）。
func BuildIndex(rules []Rule) Index {
	ix := make(Index)
	for _, r := range rules {
		key := itemsetKey(r.Antecedent)
		ix[key] = append(ix[key], Consequent{
			Items:      r.Consequent,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		})
	}
	return ix
}

// Lookup 按物品集合查前件桶，与输入顺序无关。未命中返回 nil。
func (ix Index) Lookup(items []string) []Consequent {
	return ix[Key(items)]
}
