package service

import (
	"sort"
	"strings"

	"moneta/models"

	"github.com/shopspring/decimal"
)

// FilterAllCategories 类别筛选哨兵值，表示不按类别过滤
const FilterAllCategories = "all"

// CategoryTotal 饼图数据点：类别名 + 该类别支出合计
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SeriesPoint 折线/柱状图数据点：收入为正、支出为负
// 每条交易一个点，同一天多条交易不做合并，按天聚合留给展示层
type SeriesPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// ExpenseBreakdown 按类别汇总支出金额
// 只统计 EXPENSE 类型；无支出的类别不补零；每个合计四舍五入保留两位。
// 求和在 decimal 中进行，避免浮点累加误差影响展示值。
func ExpenseBreakdown(list []models.Transaction) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, t := range list {
		if t.Type != models.TypeExpense {
			continue
		}
		name := t.Category.Name
		sums[name] = sums[name].Add(decimal.NewFromFloat(t.Amount))
	}

	totals := make(map[string]float64, len(sums))
	for name, sum := range sums {
		v, _ := sum.Round(2).Float64()
		totals[name] = v
	}
	return totals
}

// BreakdownPairs 把汇总结果转成确定有序的 {name, value} 列表
// 金额降序，金额相同按名称升序，保证同一份数据两次聚合输出一致
func BreakdownPairs(totals map[string]float64) []CategoryTotal {
	pairs := make([]CategoryTotal, 0, len(totals))
	for name, value := range totals {
		pairs = append(pairs, CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Value != pairs[j].Value {
			return pairs[i].Value > pairs[j].Value
		}
		return pairs[i].Name < pairs[j].Name
	})
	return pairs
}

// SignedSeries 把交易列表映射为带符号的时间序列
// 输入需按日期升序；输出逐条对应，收入取正、支出取负
func SignedSeries(list []models.Transaction) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(list))
	for _, t := range list {
		amount := t.Amount
		if t.Type == models.TypeExpense {
			amount = -amount
		}
		points = append(points, SeriesPoint{
			Date:     t.Date.Format("2006-01-02"),
			Amount:   amount,
			Category: t.Category.Name,
		})
	}
	return points
}

// Filter 按标题关键字 + 类别名过滤交易列表，保持原有相对顺序
// query 做大小写不敏感的子串匹配，空串匹配所有标题；
// category 为空或 "all" 时不过滤类别，否则与类别名大小写不敏感相等
func Filter(list []models.Transaction, query, category string) []models.Transaction {
	q := strings.ToLower(query)
	matchAll := category == "" || strings.EqualFold(category, FilterAllCategories)

	out := make([]models.Transaction, 0, len(list))
	for _, t := range list {
		if !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		if !matchAll && !strings.EqualFold(t.Category.Name, category) {
			continue
		}
		out = append(out, t)
	}
	return out
}
