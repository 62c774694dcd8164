package api

import (
	"net/http"
	"strconv"
	"strings"

	"moneta/database"
	"moneta/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 新建类别未指定颜色时的默认灰色
const defaultCategoryColor = "#64748b"

// CategoryHandler 交易类别管理
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Sort  int    `json:"sort"`
	Color string `json:"color" binding:"omitempty,max=20"` // 颜色代码，如 #ef4444
}

type CategoryUpdateRequest struct {
	Name  string  `json:"name" binding:"omitempty,min=1,max=50"`
	Sort  *int    `json:"sort"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}

// List 列出所有类别（不包含软删除）
// @Summary 获取类别列表
// @Description 获取全部交易类别，按排序字段升序、ID 升序排列
// @Tags 类别
// @Produce json
// @Success 200 {array} models.Category "获取成功"
// @Failure 500 {object} ErrorResponse "查询失败"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var list []models.Category
	if err := database.DB.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		logrus.Errorf("查询类别失败: %v", err)
		InternalError(c, "failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create 创建类别
// @Summary 创建类别
// @Description 创建新的交易类别，名称唯一，可设置排序和颜色
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "类别信息"
// @Success 201 {object} models.Category "创建成功"
// @Failure 400 {object} ErrorResponse "参数错误或名称已存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "name required")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "name required")
		return
	}

	// 唯一性
	var existing models.Category
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		BadRequest(c, "category name already exists")
		return
	}

	color := req.Color
	if color == "" {
		color = defaultCategoryColor
	}
	cat := models.Category{Name: req.Name, Sort: req.Sort, Color: color}
	if err := database.DB.Create(&cat).Error; err != nil {
		logrus.Errorf("创建类别失败: %v", err)
		InternalErrorWithDetails(c, "failed to create category", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// Update 更新类别
// @Summary 更新类别
// @Description 更新指定类别的名称、排序或颜色
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Param request body CategoryUpdateRequest true "更新的类别信息"
// @Success 200 {object} models.Category "更新成功"
// @Failure 400 {object} ErrorResponse "参数错误或名称已存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 404 {object} ErrorResponse "类别不存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid category id")
		return
	}

	var cat models.Category
	if err := database.DB.First(&cat, uint(id64)).Error; err != nil {
		NotFound(c, "category not found")
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			BadRequest(c, "name required")
			return
		}
		var existing models.Category
		if err := database.DB.Where("name = ? AND id != ?", req.Name, cat.ID).First(&existing).Error; err == nil {
			BadRequest(c, "category name already exists")
			return
		}
		updates["name"] = req.Name
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.Color != nil {
		color := *req.Color
		if color == "" {
			color = defaultCategoryColor
		}
		updates["color"] = color
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, cat)
		return
	}

	if err := database.DB.Model(&cat).Updates(updates).Error; err != nil {
		logrus.Errorf("更新类别失败: %v", err)
		InternalErrorWithDetails(c, "failed to update category", err)
		return
	}
	database.DB.First(&cat, cat.ID)
	c.JSON(http.StatusOK, cat)
}

// Delete 软删除类别
// @Summary 删除类别
// @Description 软删除指定类别，已有交易的历史记录不受影响
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 204 "删除成功"
// @Failure 400 {object} ErrorResponse "无效的ID"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 404 {object} ErrorResponse "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid category id")
		return
	}
	var cat models.Category
	if err := database.DB.First(&cat, uint(id64)).Error; err != nil {
		NotFound(c, "category not found")
		return
	}
	if err := database.DB.Delete(&cat).Error; err != nil {
		logrus.Errorf("删除类别失败: %v", err)
		InternalErrorWithDetails(c, "failed to delete category", err)
		return
	}
	c.Status(http.StatusNoContent)
}
