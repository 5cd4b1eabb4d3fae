package render

// Scene palette
var (
	RgbBackdropCenter = RGB{5, 10, 5} // #050a05
	RgbBackdropEdge   = RGB{0, 0, 0}
	RgbHaze           = RGB{12, 30, 14}

	RgbStar = RGB{34, 197, 94}

	RgbThought  = RGB{236, 244, 238}
	RgbQuestion = RGB{168, 200, 176}

	RgbOrbCore = RGB{60, 170, 96}
	RgbOrbGlow = RGB{14, 48, 24}

	RgbPrompt      = RGB{110, 130, 115}
	RgbInput       = RGB{220, 232, 222}
	RgbBusy        = RGB{70, 110, 80}
	RgbHUD         = RGB{120, 140, 125}
	RgbHUDBackdrop = RGB{8, 14, 9}
)
