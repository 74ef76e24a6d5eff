package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/retailrec/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
// 名单以 JSON 字符串数组存放，例如 key "blocklist:oos" 下的
// ["Phones","Machines"]。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetBlocklist 从 Store 读取屏蔽名单。
func (a *StoreAdapter) GetBlocklist(ctx context.Context, key string) ([]string, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}
