package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number 接受 JSON 数字或数字字符串；其它值（null、非数字字符串、布尔）都按 0 处理，
// 之后由业务校验报 Missing input
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = 0
			return nil
		}
		b = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

func (n Number) Float() float64 { return float64(n) }

// ID 正整数才是合法 id；0 表示缺失，其它值返回 ok=false
func (n Number) ID() (id uint, ok bool) {
	f := float64(n)
	if f == 0 {
		return 0, true
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0, false
	}
	return uint(f), true
}

// Text 接受 JSON 字符串、数字或布尔（true 记为 "1"）；null、false、数组、对象都记为空串
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0:
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
	case string(b) == "true":
		*t = "1"
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		*t = Text(b)
	default:
		*t = ""
	}
	return nil
}

func (t Text) String() string { return string(t) }
