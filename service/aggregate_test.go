package service

import (
	"testing"
	"time"

	"moneta/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(title string, amount float64, typ, category string, date time.Time) models.Transaction {
	return models.Transaction{
		Title:    title,
		Amount:   amount,
		Type:     typ,
		Category: models.Category{Name: category},
		Date:     date,
	}
}

func TestExpenseBreakdown(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local)
	list := []models.Transaction{
		tx("午餐", 30, models.TypeExpense, "Food", day),
		tx("晚餐", 20, models.TypeExpense, "Food", day),
		tx("工资", 100, models.TypeIncome, "Salary", day),
	}

	totals := ExpenseBreakdown(list)

	// 收入不参与统计，Salary 不出现
	require.Len(t, totals, 1)
	assert.Equal(t, 50.0, totals["Food"])
}

func TestExpenseBreakdownEmptyInput(t *testing.T) {
	assert.Empty(t, ExpenseBreakdown(nil))
	assert.Empty(t, ExpenseBreakdown([]models.Transaction{}))
}

func TestExpenseBreakdownAllIncome(t *testing.T) {
	day := time.Now()
	list := []models.Transaction{
		tx("工资", 5000, models.TypeIncome, "Salary", day),
		tx("奖金", 800, models.TypeIncome, "Salary", day),
	}
	assert.Empty(t, ExpenseBreakdown(list))
}

func TestExpenseBreakdownRounding(t *testing.T) {
	day := time.Now()
	// 0.1+0.2 浮点直加得 0.30000000000000004，聚合结果必须是展示用的两位小数
	list := []models.Transaction{
		tx("a", 0.1, models.TypeExpense, "Food", day),
		tx("b", 0.2, models.TypeExpense, "Food", day),
		tx("c", 1.005, models.TypeExpense, "Transport", day),
	}
	totals := ExpenseBreakdown(list)
	assert.Equal(t, 0.3, totals["Food"])
	assert.Equal(t, 1.01, totals["Transport"])
}

func TestExpenseBreakdownIdempotent(t *testing.T) {
	day := time.Now()
	list := []models.Transaction{
		tx("a", 12.3, models.TypeExpense, "Food", day),
		tx("b", 4.56, models.TypeExpense, "Bills", day),
		tx("c", 7.89, models.TypeExpense, "Food", day),
	}

	first := BreakdownPairs(ExpenseBreakdown(list))
	second := BreakdownPairs(ExpenseBreakdown(list))
	assert.Equal(t, first, second)
}

func TestBreakdownPairsOrdering(t *testing.T) {
	pairs := BreakdownPairs(map[string]float64{
		"Food":      50,
		"Transport": 80,
		"Bills":     50,
	})

	// 金额降序，金额相同按名称升序
	require.Len(t, pairs, 3)
	assert.Equal(t, CategoryTotal{Name: "Transport", Value: 80}, pairs[0])
	assert.Equal(t, CategoryTotal{Name: "Bills", Value: 50}, pairs[1])
	assert.Equal(t, CategoryTotal{Name: "Food", Value: 50}, pairs[2])
}

func TestSignedSeries(t *testing.T) {
	day := time.Date(2025, 1, 2, 10, 30, 0, 0, time.Local)
	list := []models.Transaction{
		tx("工资", 10, models.TypeIncome, "Salary", day),
		tx("咖啡", 5, models.TypeExpense, "Food", day),
	}

	points := SignedSeries(list)

	// 同一天两条交易产出两个点，不做按天合并
	require.Len(t, points, 2)
	assert.Equal(t, SeriesPoint{Date: "2025-01-02", Amount: 10, Category: "Salary"}, points[0])
	assert.Equal(t, SeriesPoint{Date: "2025-01-02", Amount: -5, Category: "Food"}, points[1])
}

func TestSignedSeriesEmpty(t *testing.T) {
	assert.Empty(t, SignedSeries(nil))
}

func TestFilter(t *testing.T) {
	day := time.Now()
	list := []models.Transaction{
		tx("Groceries", 10, models.TypeExpense, "Food", day),
		tx("Gym", 20, models.TypeExpense, "Health", day),
		tx("Groceries Extra", 30, models.TypeExpense, "Food", day),
	}

	// 标题子串，大小写不敏感，保持原顺序
	got := Filter(list, "grocer", FilterAllCategories)
	require.Len(t, got, 2)
	assert.Equal(t, "Groceries", got[0].Title)
	assert.Equal(t, "Groceries Extra", got[1].Title)

	// 类别过滤，大小写不敏感
	got = Filter(list, "", "food")
	require.Len(t, got, 2)

	// 标题 + 类别组合
	got = Filter(list, "extra", "Food")
	require.Len(t, got, 1)
	assert.Equal(t, "Groceries Extra", got[0].Title)

	// 无匹配
	assert.Empty(t, Filter(list, "xyz", FilterAllCategories))
	assert.Empty(t, Filter(list, "grocer", "Health"))
}

func TestFilterEmptyQueryAllCategories(t *testing.T) {
	day := time.Now()
	list := []models.Transaction{
		tx("A", 1, models.TypeExpense, "Food", day),
		tx("B", 2, models.TypeIncome, "Salary", day),
		tx("C", 3, models.TypeExpense, "Bills", day),
	}

	// 空查询 + all 返回原列表，顺序不变
	got := Filter(list, "", FilterAllCategories)
	assert.Equal(t, list, got)

	// 空类别等同于 all
	got = Filter(list, "", "")
	assert.Equal(t, list, got)
}

func TestFilterPure(t *testing.T) {
	day := time.Now()
	list := []models.Transaction{
		tx("Groceries", 10, models.TypeExpense, "Food", day),
		tx("Gym", 20, models.TypeExpense, "Health", day),
	}

	// 相同输入多次调用结果一致，且不修改输入
	first := Filter(list, "g", "all")
	second := Filter(list, "g", "all")
	assert.Equal(t, first, second)
	assert.Equal(t, "Groceries", list[0].Title)
	assert.Len(t, list, 2)
}
