package upstream

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// 上游字段类型并不稳定（同一字段可能是数字也可能是字符串），
// 以下函数按 "value || default" 的真值语义读取 gjson.Result。

// truthy：不存在、null、false、0、"" 为假；对象与数组恒为真
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0 && !math.IsNaN(r.Num)
	case gjson.String:
		return r.Str != ""
	default:
		return true
	}
}

func stringOr(r gjson.Result, def string) string {
	if !truthy(r) {
		return def
	}
	if r.Type == gjson.JSON {
		return r.Raw
	}
	return r.String()
}

// firstTruthy 返回第一个为真的候选值的字符串形式
func firstTruthy(def string, candidates ...gjson.Result) string {
	for _, c := range candidates {
		if truthy(c) {
			return stringOr(c, def)
		}
	}
	return def
}

// firstElem 取数组首元素；非数组或空数组返回不存在的 Result
func firstElem(r gjson.Result) gjson.Result {
	if !r.IsArray() {
		return gjson.Result{}
	}
	arr := r.Array()
	if len(arr) == 0 {
		return gjson.Result{}
	}
	return arr[0]
}

// parseInt 按整数前缀解析：数字取整，字符串取前导整数，其余视为不可解析
func parseInt(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Number:
		if math.IsNaN(r.Num) || math.IsInf(r.Num, 0) || math.Abs(r.Num) > math.MaxInt32 {
			return 0, false
		}
		return int(math.Trunc(r.Num)), true
	case gjson.String:
		return parseIntPrefix(r.Str)
	default:
		return 0, false
	}
}

// parseIntPrefix 解析字符串开头的整数，例如 "4人" => 4, " -2" => -2, "0x10" => 16
func parseIntPrefix(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], base, 32)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return int(n), true
}

func isDigit(c byte, base int) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if base == 16 {
		return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}
	return false
}

// intOr 可解析且非 0 时取解析值，否则取 def
func intOr(r gjson.Result, def int) int {
	n, ok := parseInt(r)
	if !ok || n == 0 {
		return def
	}
	return n
}
