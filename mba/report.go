package mba

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
)

// 导出表的硬阈值，供分析协作方消费。
const (
	reportMinConfidence = 0.6
	reportMinLift       = 2.0
)

// Report 产出离线分析用的平铺规则表：
// 置信度 > 0.6 且提升度 > 2，按支持度降序稳定排序。
func Report(rules []Rule) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Confidence > reportMinConfidence && r.Lift > reportMinLift {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Support > out[j].Support
	})
	return out
}

// WriteRulesCSV 把规则表写成 CSV（antecedents, consequents, support,
// confidence, lift），物品以 ", " 拼接。
func WriteRulesCSV(w io.Writer, rules []Rule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"antecedents", "consequents", "support", "confidence", "lift"}); err != nil {
		return err
	}
	for _, r := range rules {
		record := []string{
			strings.Join(r.Antecedent, ", "),
			strings.Join(r.Consequent, ", "),
			formatFloat(r.Support),
			formatFloat(r.Confidence),
			formatFloat(r.Lift),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteItemsetsCSV 把频繁项集写成 CSV（support, itemsets）。
func WriteItemsetsCSV(w io.Writer, sets []Itemset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"support", "itemsets"}); err != nil {
		return err
	}
	for _, s := range sets {
		if err := cw.Write([]string{formatFloat(s.Support), strings.Join(s.Items, ", ")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
