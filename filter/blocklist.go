// Package filter 是部署侧可选的结果过滤层：缺货/下架屏蔽、
// 表达式剔除。引擎的打分合同不在这里——过滤只做减法。
package filter

import (
	"context"

	"github.com/rushteam/retailrec/core"
)

// BlocklistFilter 按屏蔽名单剔除候选（典型场景：缺货、下架的子品类
// 或商品名，由运营侧维护）。
type BlocklistFilter struct {
	// Labels 是内存中的屏蔽标签列表
	Labels []string

	// Store 用于从存储中读取屏蔽名单（可选）
	Store BlocklistStore

	// Key 是 Store 中的名单 key（可选）
	Key string
}

// BlocklistStore 是屏蔽名单的存储接口。
type BlocklistStore interface {
	// GetBlocklist 获取屏蔽标签列表
	GetBlocklist(ctx context.Context, key string) ([]string, error)
}

// NewBlocklistFilter 创建一个屏蔽名单过滤器。
func NewBlocklistFilter(labels []string, adapter *StoreAdapter, key string) *BlocklistFilter {
	var store BlocklistStore
	if adapter != nil {
		store = adapter
	}
	return &BlocklistFilter{Labels: labels, Store: store, Key: key}
}

func (f *BlocklistFilter) Name() string {
	return "filter.blocklist"
}

func (f *BlocklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, label := range f.Labels {
		if item.ID == label {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		blocked, err := f.Store.GetBlocklist(ctx, f.Key)
		if err == nil {
			for _, label := range blocked {
				if item.ID == label {
					return true, nil
				}
			}
		}
		// 存储读失败时放行：过滤是修饰，不应拖垮推荐
	}

	return false, nil
}
