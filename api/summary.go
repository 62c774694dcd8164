package api

import (
	"net/http"

	"moneta/database"
	"moneta/models"
	"moneta/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetBreakdown 获取按类别汇总的支出统计（饼图数据）
// @Summary 获取支出类别汇总
// @Description 只统计支出（EXPENSE），按类别名求和并保留两位小数，无支出的类别不返回。空数据返回空数组而非错误。
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.CategoryTotal "获取成功，金额降序"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 500 {object} ErrorResponse "查询失败"
// @Router /api/v1/transactions/breakdown [get]
func (h *TransactionHandler) GetBreakdown(c *gin.Context) {
	var list []models.Transaction
	if err := database.DB.Preload("Category").Find(&list).Error; err != nil {
		logrus.Errorf("查询交易记录失败: %v", err)
		InternalError(c, "failed to fetch transactions")
		return
	}

	pairs := service.BreakdownPairs(service.ExpenseBreakdown(list))
	c.JSON(http.StatusOK, pairs)
}

// GetChartSeries 获取带符号的时间序列（折线/柱状图数据）
// @Summary 获取图表时间序列
// @Description 按日期升序返回逐条交易的数据点，收入为正、支出为负，同一天多条交易不合并。
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.SeriesPoint "获取成功"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 500 {object} ErrorResponse "查询失败"
// @Router /api/v1/transactions/chart [get]
func (h *TransactionHandler) GetChartSeries(c *gin.Context) {
	// 带符号序列要求按日期升序
	var list []models.Transaction
	if err := database.DB.Preload("Category").Order("date ASC").Find(&list).Error; err != nil {
		logrus.Errorf("查询交易记录失败: %v", err)
		InternalError(c, "failed to fetch transactions")
		return
	}

	c.JSON(http.StatusOK, service.SignedSeries(list))
}
