package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetIsValid(t *testing.T) {
	// 未使用且未过期
	p := PasswordReset{ExpiresAt: time.Now().Add(10 * time.Minute)}
	assert.True(t, p.IsValid())
	assert.False(t, p.IsExpired())

	// 已使用
	p.Used = true
	assert.False(t, p.IsValid())

	// 已过期
	expired := PasswordReset{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, expired.IsExpired())
	assert.False(t, expired.IsValid())
}

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.True(t, ch >= '0' && ch <= '9')
	}

	// 不应每次都相同（碰撞概率极低）
	other, err := GenerateVerificationCode()
	require.NoError(t, err)
	third, err := GenerateVerificationCode()
	require.NoError(t, err)
	assert.False(t, code == other && other == third)
}

func TestNormalizeType(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"INCOME", TypeIncome, true},
		{"income", TypeIncome, true},
		{"Expense", TypeExpense, true},
		{" expense ", TypeExpense, true},
		{"", "", false},
		{"transfer", "", false},
	}
	for _, c := range cases {
		got, ok := NormalizeType(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}
