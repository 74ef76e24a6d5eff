package mba

import "sort"

// Metric 是规则筛选使用的判别指标。
type Metric string

const (
	// MetricLift 用于请求时的混合打分路径
	MetricLift Metric = "lift"
	// MetricConfidence 用于离线分析/导出路径
	MetricConfidence Metric = "confidence"
)

// Options 是规则挖掘参数。
type Options struct {
	// MinSupport 是频繁项集的最小支持度
	MinSupport float64
	// Metric 是规则保留的判别指标（lift 或 confidence）
	Metric Metric
	// MinThreshold 是判别指标的最小值
	MinThreshold float64
}

// DefaultOptions 返回推荐路径的默认参数（与训练产物一致）。
func DefaultOptions() Options {
	return Options{MinSupport: 0.001, Metric: MetricLift, MinThreshold: 1.5}
}

// ReportOptions 返回离线分析路径的默认参数。
func ReportOptions() Options {
	return Options{MinSupport: 0.002, Metric: MetricConfidence, MinThreshold: 0.6}
}

// Rule 是一条有向关联规则：前件 → 后件。
// 不变式：Antecedent 与 Consequent 非空且不相交，两者均按字典序存放。
// Support 是前后件并集的支持度。
type Rule struct {
	Antecedent []string
	Consequent []string
	Support    float64
	Confidence float64
	Lift       float64
}

// Mine 挖掘关联规则：
//  1. 枚举频繁项集（支持度 ≥ MinSupport）
//  2. 对每个大小 ≥2 的频繁项集，枚举全部非空真子集作为前件，补集为后件
//  3. 按 Options.Metric 过滤（≥ MinThreshold）
//  4. 按置信度升序稳定排序
//
// 空事务输入产出空结果，不是错误；阈值筛空同样是合法结果。
func Mine(txns [][]string, opts Options) []Rule {
	freq := FrequentItemsets(txns, opts.MinSupport)
	if len(freq) == 0 {
		return nil
	}

	support := make(map[string]float64, len(freq))
	for _, s := range freq {
		support[itemsetKey(s.Items)] = s.Support
	}

	var rules []Rule
	for _, s := range freq {
		k := len(s.Items)
		if k < 2 {
			continue
		}
		// 用位掩码枚举前件；掩码顺序固定，产出顺序随之确定
		for mask := 1; mask < (1<<k)-1; mask++ {
			antecedent := make([]string, 0, k-1)
			consequent := make([]string, 0, k-1)
			for i, item := range s.Items {
				if mask&(1<<i) != 0 {
					antecedent = append(antecedent, item)
				} else {
					consequent = append(consequent, item)
				}
			}
			supA := support[itemsetKey(antecedent)]
			supC := support[itemsetKey(consequent)]
			if supA == 0 || supC == 0 {
				continue // 子集必频繁，防御除零
			}
			confidence := s.Support / supA
			lift := confidence / supC

			metric := lift
			if opts.Metric == MetricConfidence {
				metric = confidence
			}
			if metric < opts.MinThreshold {
				continue
			}
			rules = append(rules, Rule{
				Antecedent: antecedent,
				Consequent: consequent,
				Support:    s.Support,
				Confidence: confidence,
				Lift:       lift,
			})
		}
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Confidence < rules[j].Confidence
	})
	return rules
}
