package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"moneta/database"
	"moneta/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// parseExportRange 解析导出时间范围，结束时间包含当天
func parseExportRange(c *gin.Context) (start, end time.Time, ok bool) {
	startStr := c.Query("start_time")
	endStr := c.Query("end_time")

	if startStr == "" || endStr == "" {
		BadRequest(c, "start_time and end_time required")
		return
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		BadRequest(c, "start_time invalid, expected format: 2006-01-02")
		return
	}
	end, err = time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		BadRequest(c, "end_time invalid, expected format: 2006-01-02")
		return
	}
	end = end.Add(24*time.Hour - time.Second)
	return start, end, true
}

// fetchExportRows 查询导出区间内的交易记录（含类别，日期降序）
func fetchExportRows(c *gin.Context, start, end time.Time) ([]models.Transaction, bool) {
	var list []models.Transaction
	if err := database.DB.Preload("Category").
		Where("date >= ? AND date <= ?", start, end).
		Order("date DESC").
		Find(&list).Error; err != nil {
		logrus.Errorf("查询导出数据失败: %v", err)
		InternalError(c, "failed to fetch transactions")
		return nil, false
	}
	return list, true
}

func noteText(t models.Transaction) string {
	if t.Note == nil {
		return ""
	}
	return *t.Note
}

// ExportCSV 导出交易记录为 CSV
// @Summary 导出交易记录为 CSV
// @Description 根据时间范围导出交易记录为 CSV 文件（带 BOM，兼容 Excel 中文）
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	start, end, ok := parseExportRange(c)
	if !ok {
		return
	}
	list, ok := fetchExportRows(c, start, end)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"ID", "标题", "金额", "类型", "类别", "日期", "备注"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "failed to build csv")
		return
	}

	for _, t := range list {
		row := []string{
			fmt.Sprintf("%d", t.ID),
			t.Title,
			fmt.Sprintf("%.2f", t.Amount),
			t.Type,
			t.Category.Name,
			t.Date.Format("2006-01-02 15:04:05"),
			noteText(t),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "failed to build csv")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "failed to build csv")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", c.Query("start_time"), c.Query("end_time"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出交易记录为 JSON
// @Summary 导出交易记录为 JSON
// @Description 根据时间范围导出交易记录及汇总信息
// @Tags 导出
// @Produce json
// @Security BearerAuth
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {object} map[string]interface{} "导出成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	start, end, ok := parseExportRange(c)
	if !ok {
		return
	}
	list, ok := fetchExportRows(c, start, end)
	if !ok {
		return
	}

	// 区间内收支汇总
	var totalIncome, totalExpense float64
	for _, t := range list {
		switch t.Type {
		case models.TypeIncome:
			totalIncome += t.Amount
		case models.TypeExpense:
			totalExpense += t.Amount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"start_time":    c.Query("start_time"),
		"end_time":      c.Query("end_time"),
		"total_count":   len(list),
		"total_income":  totalIncome,
		"total_expense": totalExpense,
		"transactions":  list,
	})
}

// ExportExcel 导出交易记录为 Excel
// @Summary 导出交易记录为 Excel
// @Description 根据时间范围导出交易记录为 xlsx 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	start, end, ok := parseExportRange(c)
	if !ok {
		return
	}
	list, ok := fetchExportRows(c, start, end)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "交易记录"
	f.SetSheetName("Sheet1", sheetName)

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"ID", "标题", "金额", "类型", "类别", "日期", "备注"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", "G1", headerStyle)

	for row, t := range list {
		values := []interface{}{
			t.ID,
			t.Title,
			t.Amount,
			t.Type,
			t.Category.Name,
			t.Date.Format("2006-01-02 15:04:05"),
			noteText(t),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logrus.Errorf("生成 Excel 失败: %v", err)
		InternalError(c, "failed to build excel")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.xlsx", c.Query("start_time"), c.Query("end_time"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
