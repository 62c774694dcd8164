package api

import "encoding/json"

// StringOrNumber 宽松的 JSON 标量：同时接受 "42.50" 与 42.50
// 反序列化阶段从不报错，取值合法性留给处理器按字段顺序校验，
// 这样缺 title 的请求不会先被 amount 的格式问题拦下
type StringOrNumber string

// UnmarshalJSON 实现 json.Unmarshaler
func (s *StringOrNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		// null 视为未提供
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = StringOrNumber(str)
		return nil
	}
	// 数字、布尔等其它标量保留原始字面量
	*s = StringOrNumber(b)
	return nil
}

// String 返回原始字面量
func (s StringOrNumber) String() string {
	return string(s)
}

// IsEmpty 判断字段是否缺失或为空
func (s StringOrNumber) IsEmpty() bool {
	return s == ""
}
