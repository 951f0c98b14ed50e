package report

import "kpidash/internal/model"

// 固定配色（不对用户开放）
var (
	colorTextDark  = model.RGB{R: 51, G: 51, B: 51}
	colorTextMuted = model.RGB{R: 102, G: 102, B: 102}
	colorTextLight = model.RGB{R: 255, G: 255, B: 255}
	colorHeader    = model.RGB{R: 51, G: 51, B: 51}
)

// Palette 状态 -> 底色 查找表
type Palette map[model.Status]model.RGB

// DefaultPalette 默认状态配色
var DefaultPalette = Palette{
	model.StatusGreen:  {R: 34, G: 139, B: 34},
	model.StatusYellow: {R: 255, G: 165, B: 0},
	model.StatusRed:    {R: 220, G: 20, B: 60},
	model.StatusGray:   {R: 128, G: 128, B: 128},
}

// Color 返回状态对应颜色，未配置的状态退回 Gray 的颜色
func (p Palette) Color(s model.Status) model.RGB {
	if c, ok := p[s]; ok {
		return c
	}
	if c, ok := p[model.StatusGray]; ok {
		return c
	}
	return DefaultPalette[model.StatusGray]
}

func (p Palette) clone() Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
