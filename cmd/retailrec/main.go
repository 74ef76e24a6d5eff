// retailrec 是零售子品类推荐服务：启动时从订单 CSV 训练
// 关联规则索引、用户相似度模型与品类热销目录，随后提供 HTTP 推荐；
// 带 -export 时只做离线规则导出，不启动服务。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/retailrec/catalogue"
	"github.com/rushteam/retailrec/cf"
	"github.com/rushteam/retailrec/config"
	"github.com/rushteam/retailrec/core"
	"github.com/rushteam/retailrec/dataset"
	"github.com/rushteam/retailrec/filter"
	"github.com/rushteam/retailrec/mba"
	"github.com/rushteam/retailrec/pipeline"
	"github.com/rushteam/retailrec/recommend"
	"github.com/rushteam/retailrec/rerank"
	"github.com/rushteam/retailrec/server"
	"github.com/rushteam/retailrec/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML 配置文件路径，缺省用内置默认值")
		exportDir  = flag.String("export", "", "导出规则/频繁项集 CSV 到该目录后退出")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *configPath, *exportDir); err != nil {
		logger.Fatal("retailrec exited", zap.Error(err))
	}
}

func run(logger *zap.Logger, configPath, exportDir string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", configPath, err)
		}
		cfg = loaded
	}

	rows, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", cfg.Data.Path, err)
	}
	logger.Info("dataset loaded", zap.String("path", cfg.Data.Path), zap.Int("rows", len(rows)))

	baskets := dataset.DailyBaskets(rows)
	txns := dataset.Transactions(baskets)

	if exportDir != "" {
		return export(logger, cfg, txns, exportDir)
	}

	// 三个模型互相独立，并行构建缩短启动时间
	var (
		rules mba.Index
		model *cf.Model
		cat   *catalogue.Catalogue
	)
	var g errgroup.Group
	g.Go(func() error {
		mined := mba.Mine(txns, cfg.MiningOptions())
		rules = mba.BuildIndex(mined)
		logger.Info("rule index built", zap.Int("rules", len(mined)))
		return nil
	})
	g.Go(func() error {
		customers, lifetime := dataset.CustomerBaskets(baskets)
		model = cf.BuildModel(customers, lifetime)
		logger.Info("similarity model built", zap.Int("customers", len(customers)))
		return nil
	})
	g.Go(func() error {
		cat = catalogue.Build(rows)
		logger.Info("catalogue built", zap.Int("categories", cat.Len()))
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	engine := &recommend.Engine{
		Rules:          rules,
		CF:             model,
		Catalogue:      cat,
		TopN:           cfg.Blend.TopN,
		AlphaHeavy:     cfg.Blend.AlphaHeavy,
		AlphaLight:     cfg.Blend.AlphaLight,
		HeavyThreshold: cfg.Blend.HeavyThreshold,
	}

	var kv core.KeyValueStore
	if cfg.Redis.Addr != "" {
		rs, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		defer rs.Close()
		kv = rs
		// 热销榜快照写入存储，供外部消费；写失败只告警不中断启动
		if err := snapshotCatalogue(kv, cat); err != nil {
			logger.Warn("catalogue snapshot failed", zap.Error(err))
		}
	}

	nodes := []pipeline.Node{engine}
	if node := buildFilterNode(cfg, kv); node != nil {
		nodes = append(nodes, node)
	}
	if cfg.Server.MaxResults > 0 {
		nodes = append(nodes, &rerank.TopNNode{N: cfg.Server.MaxResults})
	}

	srv := &server.Server{
		Pipeline:     &pipeline.Pipeline{Nodes: nodes},
		Logger:       logger,
		MaxCartItems: cfg.Server.MaxCartItems,
	}
	return srv.Run(cfg.Server.Addr)
}

// buildFilterNode 按配置组装过滤节点，无过滤器时返回 nil。
func buildFilterNode(cfg *config.Config, kv core.KeyValueStore) *filter.Node {
	var filters []filter.Filter
	if len(cfg.Filter.Blocklist) > 0 || (kv != nil && cfg.Filter.BlocklistKey != "") {
		var adapter *filter.StoreAdapter
		if kv != nil {
			adapter = filter.NewStoreAdapter(kv)
		}
		filters = append(filters, filter.NewBlocklistFilter(cfg.Filter.Blocklist, adapter, cfg.Filter.BlocklistKey))
	}
	if cfg.Filter.Expr != "" {
		if ef, err := filter.NewExprFilter(cfg.Filter.Expr); err == nil {
			filters = append(filters, ef)
		}
	}
	if len(filters) == 0 {
		return nil
	}
	return &filter.Node{Filters: filters}
}

// snapshotCatalogue 把各品类热销榜写成有序集合（分数为名次倒序）。
func snapshotCatalogue(kv core.KeyValueStore, cat *catalogue.Catalogue) error {
	ctx := context.Background()
	for _, category := range cat.Categories() {
		top := cat.Get(category)
		for i, product := range top {
			score := float64(len(top) - i)
			if err := kv.ZAdd(ctx, "catalogue:top:"+category, score, product); err != nil {
				return err
			}
		}
	}
	return nil
}

// export 走离线分析路径：置信度口径挖掘，写出规则表与频繁项集表。
func export(logger *zap.Logger, cfg *config.Config, txns [][]string, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	itemsets := mba.FrequentItemsets(txns, cfg.Report.MinSupport)
	rules := mba.Report(mba.Mine(txns, cfg.ReportingOptions()))

	rulesPath := filepath.Join(dir, "association_rules.csv")
	rf, err := os.Create(rulesPath)
	if err != nil {
		return err
	}
	defer rf.Close()
	if err := mba.WriteRulesCSV(rf, rules); err != nil {
		return fmt.Errorf("write %s: %w", rulesPath, err)
	}

	setsPath := filepath.Join(dir, "frequent_itemsets.csv")
	sf, err := os.Create(setsPath)
	if err != nil {
		return err
	}
	defer sf.Close()
	if err := mba.WriteItemsetsCSV(sf, itemsets); err != nil {
		return fmt.Errorf("write %s: %w", setsPath, err)
	}

	logger.Info("export done",
		zap.String("dir", dir),
		zap.Int("rules", len(rules)),
		zap.Int("itemsets", len(itemsets)),
	)
	return nil
}
