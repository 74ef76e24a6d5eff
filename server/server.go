// Package server 提供 HTTP 推荐服务：请求绑定、边界校验、链路调用。
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rushteam/retailrec/core"
	"github.com/rushteam/retailrec/pipeline"
)

// Server 持有推荐链路和日志器，注册 HTTP 路由。
type Server struct {
	Pipeline *pipeline.Pipeline
	Logger   *zap.Logger

	// MaxCartItems 是购物车去重后允许的最大物品数，<= 0 表示不限制。
	// 混合分支的子集枚举是 O(2^n)，线上必须设限。
	MaxCartItems int
}

// recommendRequest 是 POST /recommend 的请求体。
// Cart 保留 nil 与空切片的区别：null/缺省解码为 nil（未传购物车），
// [] 解码为空切片（传了空车），两者走不同的决策分支。
type recommendRequest struct {
	CustomerName string   `json:"customer_name" binding:"required"`
	Cart         []string `json:"cart"`
	Category     string   `json:"category"`
}

type recommendResponse struct {
	Recommendations []string `json:"recommendations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router 构建并返回 gin 路由。
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	r.POST("/recommend", s.handleRecommend)
	return r
}

// Run 在 addr 上启动服务，阻塞直到出错。
func (s *Server) Run(addr string) error {
	s.Logger.Info("http server listening", zap.String("addr", addr))
	return s.Router().Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRecommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	rctx := &core.RecommendContext{
		CustomerName: req.CustomerName,
		Cart:         req.Cart,
		Category:     req.Category,
	}
	if s.MaxCartItems > 0 && len(rctx.CartSet()) > s.MaxCartItems {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "cart too large"})
		return
	}

	items, err := s.Pipeline.Run(c.Request.Context(), rctx, nil)
	if err != nil {
		if core.IsInvalidInput(err) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.Logger.Error("recommend failed",
			zap.String("customer", req.CustomerName),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	// 未知用户/未知品类是降级而非错误：照常 200，列表可能为空。
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, it.ID)
	}
	c.JSON(http.StatusOK, recommendResponse{Recommendations: labels})
}
