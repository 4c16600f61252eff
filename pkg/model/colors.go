// Package model 定义周排班系统的核心数据模型
package model

import (
	"fmt"
	"hash/fnv"
	"math"
)

// employeeColors 根据姓名确定性地推导展示颜色：
// 以姓名哈希取色相生成 HSL 背景色，并按亮度选择黑/白文字色保证对比度。
func employeeColors(name string) (backgroundColor, textColor string) {
	h := fnv.New32a()
	h.Write([]byte(name))
	hue := int(h.Sum32() % 360)

	backgroundColor = fmt.Sprintf("hsl(%d, 70%%, 45%%)", hue)
	textColor = contrastColor(hue)
	return backgroundColor, textColor
}

// contrastColor 根据背景色亮度选择文字颜色
func contrastColor(hue int) string {
	r, g, b := hslToRGB(float64(hue), 70, 45)
	if luminance(r, g, b) < 0.5 {
		return "#FFFFFF"
	}
	return "#000000"
}

// hslToRGB HSL 转 RGB（s、l 为百分比）
func hslToRGB(h, s, l float64) (int, int, int) {
	h = math.Mod(h, 360)
	s = s / 100
	l = l / 100

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return int(math.Round((r + m) * 255)),
		int(math.Round((g + m) * 255)),
		int(math.Round((b + m) * 255))
}

// luminance 计算 WCAG 相对亮度
func luminance(r, g, b int) float64 {
	channel := func(c int) float64 {
		v := float64(c) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(r) + 0.7152*channel(g) + 0.0722*channel(b)
}
