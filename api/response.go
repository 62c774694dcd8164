package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应结构
// 校验失败与存储失败都统一为 {error, details?}，细节只在 debug 模式下带回
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// BadRequest 400 错误响应（客户端输入问题，不重试）
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// InternalErrorWithDetails 500 错误响应，附带错误详情
// 详情经 SafeErrorMessage 过滤，release 模式下不外泄内部错误
func InternalErrorWithDetails(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Error: message}
	if detail := SafeErrorMessage(err, ""); detail != "" {
		resp.Details = detail
	}
	c.JSON(http.StatusInternalServerError, resp)
}
