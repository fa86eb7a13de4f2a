package model

// WakatimeStat is one slice of a share chart (language, editor, os, category).
type WakatimeStat struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color,omitempty"`
}

type WakatimeStatsOutput struct {
	Data []WakatimeStat `json:"data"`
}

type WakatimeGrandTotal struct {
	Digital      string  `json:"digital"`
	Hours        int     `json:"hours"`
	Minutes      int     `json:"minutes"`
	Text         string  `json:"text"`
	TotalSeconds float64 `json:"totalSeconds"`
}

type WakatimeRange struct {
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Text     string `json:"text"`
	Timezone string `json:"timezone"`
}

type WakatimeDay struct {
	GrandTotal WakatimeGrandTotal `json:"grandTotal"`
	Range      WakatimeRange      `json:"range"`
}

type WakatimeActivityOutput struct {
	Data []WakatimeDay `json:"data"`
}
