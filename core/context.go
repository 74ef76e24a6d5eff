package core

// RecommendContext 承载一次推荐请求的输入，贯穿整个 Pipeline 透传。
// 构造后不可变：引擎只读，不回写。
type RecommendContext struct {
	// CustomerName 是客户标识。是否"已知用户"由模型在请求时判定，
	// 未知用户不是错误，而是降级到品类/全局热门。
	CustomerName string

	// Cart 是进行中的购物车（子品类标签集合）。
	// nil 表示"无购物车"；非 nil 的空切片表示"购物车存在但为空"，
	// 两者走不同的决策分支（与来源行为保持一致，见引擎文档）。
	Cart []string

	// Category 是正在浏览的子品类标签，空串表示未提供。
	Category string
}

// HasCart 区分 nil 与空购物车：只有 nil 视为"无购物车"。
func (rctx *RecommendContext) HasCart() bool {
	return rctx.Cart != nil
}

// CartSet 返回去重后的购物车物品集合。重复项折叠后再做子集枚举。
func (rctx *RecommendContext) CartSet() map[string]struct{} {
	set := make(map[string]struct{}, len(rctx.Cart))
	for _, item := range rctx.Cart {
		set[item] = struct{}{}
	}
	return set
}
