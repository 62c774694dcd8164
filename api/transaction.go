package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"moneta/database"
	"moneta/models"
	"moneta/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// CreateTransactionRequest 创建交易请求
// amount 与 category 同时接受数字和字符串形式
type CreateTransactionRequest struct {
	Title    string         `json:"title" example:"Groceries"`
	Amount   StringOrNumber `json:"amount" swaggertype:"string" example:"42.50"`
	Category StringOrNumber `json:"category" swaggertype:"string" example:"1"`
	Type     string         `json:"type" example:"expense"`
	Date     string         `json:"date" example:"2025-01-02T12:30:00+08:00"`
	Note     *string        `json:"note"`
}

// 创建请求中 date 字段接受的格式，按序尝试
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseAmount 把金额字面量转换为有限的非负数
func parseAmount(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

// parseDate 解析日期，空串取当前时间
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now(), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Create 创建交易记录
// @Summary 创建交易记录
// @Description 创建一条收入/支出记录。按 title → amount → category → type 顺序校验，首个失败即返回；type 大小写不敏感，入库统一大写；date 缺省为当前时间。
// @Tags 交易记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 201 {object} models.Transaction "创建成功，返回含类别的完整记录"
// @Failure 400 {object} ErrorResponse "校验失败"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 500 {object} ErrorResponse "类别不存在或存储失败"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	// 按顺序短路校验，任何一步失败都不会落库
	if strings.TrimSpace(req.Title) == "" {
		BadRequest(c, "title required")
		return
	}
	amount, ok := parseAmount(req.Amount.String())
	if !ok {
		BadRequest(c, "amount invalid")
		return
	}
	if req.Category.IsEmpty() {
		BadRequest(c, "category required")
		return
	}
	txType, ok := models.NormalizeType(req.Type)
	if !ok {
		BadRequest(c, "type invalid")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		BadRequest(c, "date invalid")
		return
	}

	// 解析类别引用；悬空引用属于数据完整性问题，区别于 400 的入参校验
	categoryID, err := strconv.ParseUint(req.Category.String(), 10, 32)
	if err != nil {
		logrus.Warnf("无法解析类别ID %q: %v", req.Category.String(), err)
		InternalErrorWithDetails(c, "category not found", err)
		return
	}
	var category models.Category
	if err := database.DB.First(&category, uint(categoryID)).Error; err != nil {
		logrus.Warnf("类别 %d 不存在: %v", categoryID, err)
		InternalErrorWithDetails(c, "category not found", err)
		return
	}

	tx := models.Transaction{
		Title:      req.Title,
		Amount:     amount,
		Type:       txType,
		CategoryID: category.ID,
		Date:       date,
		Note:       req.Note,
	}

	if err := database.DB.Create(&tx).Error; err != nil {
		logrus.Errorf("创建交易记录失败: %v", err)
		InternalErrorWithDetails(c, "failed to create transaction", err)
		return
	}

	// 返回带已解析类别的完整记录
	tx.Category = category
	c.JSON(http.StatusCreated, tx)
}

// List 获取交易记录列表
// @Summary 获取交易记录列表
// @Description 返回全部交易记录（含类别）。order 控制日期排序（列表用 desc、图表用 asc）；q 为标题关键字（大小写不敏感子串），category 为类别名（all 表示全部），过滤在内存中进行并保持排序。
// @Tags 交易记录
// @Produce json
// @Security BearerAuth
// @Param order query string false "日期排序 asc/desc" default(desc)
// @Param q query string false "标题关键字"
// @Param category query string false "类别名过滤" default(all)
// @Success 200 {array} models.Transaction "获取成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 500 {object} ErrorResponse "查询失败"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	order := c.DefaultQuery("order", "desc")
	if order != "asc" && order != "desc" {
		BadRequest(c, "order invalid")
		return
	}

	var list []models.Transaction
	if err := database.DB.Preload("Category").
		Order("date " + strings.ToUpper(order)).
		Find(&list).Error; err != nil {
		logrus.Errorf("查询交易记录失败: %v", err)
		InternalError(c, "failed to fetch transactions")
		return
	}

	list = service.Filter(list, c.Query("q"), c.DefaultQuery("category", service.FilterAllCategories))

	c.JSON(http.StatusOK, list)
}
