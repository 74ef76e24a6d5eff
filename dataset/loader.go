// Package dataset 加载零售训练数据并做篮子分组。
// 引擎本身不做 I/O：这里是把静态 CSV 变成引擎输入的外部协作方。
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/rushteam/retailrec/core"
)

// Row 是订单级的一行训练数据。
type Row struct {
	OrderDate    time.Time
	CustomerID   string
	CustomerName string
	Category     string
	SubCategory  string
	ProductName  string
	Sales        float64
}

// 需要的表头列名。列顺序不固定，按表头定位。
var requiredColumns = []string{
	"Order Date",
	"Customer ID",
	"Customer Name",
	"Category",
	"Sub-Category",
	"Product Name",
	"Sales",
}

const dateLayout = "2/1/2006" // 日/月/年，兼容无前导零

// Load 读取 CSV 训练集并按订单日期升序排序（稳定排序，保留同日内的源顺序）。
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read 从任意 reader 解析训练集。表头缺列或行内格式非法时返回
// INVALID_INPUT 领域错误：训练数据损坏应当在启动期快速失败。
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput, "dataset: empty file")
	}
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: missing column %q", name))
		}
	}

	var rows []Row
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if len(record) < len(header) {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: line %d: %d fields, want %d", line, len(record), len(header)))
		}
		date, err := time.Parse(dateLayout, record[idx["Order Date"]])
		if err != nil {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: line %d: bad order date %q", line, record[idx["Order Date"]]))
		}
		sales, err := strconv.ParseFloat(record[idx["Sales"]], 64)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: line %d: bad sales %q", line, record[idx["Sales"]]))
		}

		rows = append(rows, Row{
			OrderDate:    date,
			CustomerID:   record[idx["Customer ID"]],
			CustomerName: record[idx["Customer Name"]],
			Category:     record[idx["Category"]],
			SubCategory:  record[idx["Sub-Category"]],
			ProductName:  record[idx["Product Name"]],
			Sales:        sales,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].OrderDate.Before(rows[j].OrderDate)
	})
	return rows, nil
}
