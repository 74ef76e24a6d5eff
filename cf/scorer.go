package cf

import "sort"

// DefaultTopN 是协同过滤召回的默认条数。
const DefaultTopN = 6

// Scored 是一条带分数的候选物品。
type Scored struct {
	Item  string
	Score float64
}

// Recommend 给目标客户打分：对每个其他客户、每个"目标没买过而对方
// 买过"的物品，累加对方与目标的相似度。按分数降序取前 topN
// （并列按物品名升序，保证确定性）。
//
// 目标客户不在训练集时返回空结果，不是错误。
// 复杂度 O(客户数 × 物品数)，由固定训练集规模上界约束。
func (m *Model) Recommend(target string, topN int) []Scored {
	ti, ok := m.index[target]
	if !ok {
		return nil
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	scores := make(map[string]float64)
	targetRow := m.table.Row(ti)
	items := m.table.Columns()

	for oi := range m.customers {
		if oi == ti {
			continue
		}
		similarity := m.sim[ti][oi]
		otherRow := m.table.Row(oi)
		for j, item := range items {
			if !targetRow[j] && otherRow[j] {
				scores[item] += similarity
			}
		}
	}

	out := make([]Scored, 0, len(scores))
	for item, score := range scores {
		out = append(out, Scored{Item: item, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Item < out[j].Item
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
