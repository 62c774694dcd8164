package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// 交易类型，入库前统一为大写
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// Transaction 交易记录模型（收入/支出）
type Transaction struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Title      string         `json:"title" gorm:"size:100;not null"`
	Amount     float64        `json:"amount" gorm:"not null"` // 存全精度，展示时保留两位
	Type       string         `json:"type" gorm:"size:10;not null;index"`
	CategoryID uint           `json:"category_id" gorm:"index;not null"`
	Category   Category       `json:"category" gorm:"foreignKey:CategoryID"`
	Date       time.Time      `json:"date" gorm:"not null;index"`
	Note       *string        `json:"note" gorm:"size:255"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// NormalizeType 大小写不敏感地解析交易类型，返回规范化的大写值
func NormalizeType(raw string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case TypeIncome:
		return TypeIncome, true
	case TypeExpense:
		return TypeExpense, true
	default:
		return "", false
	}
}
