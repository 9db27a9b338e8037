package problem

// Sample is a ready-made problem offered in text mode.
type Sample struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Samples are shown in this order.
var Samples = []Sample{
	{
		Key:   "quadratic",
		Label: "Phương trình bậc 2",
		Text:  "Giải phương trình x^2 - 5x + 6 = 0",
	},
	{
		Key:   "derivative",
		Label: "Đạo hàm",
		Text:  "Tính đạo hàm của hàm số y = (2x+1)/(x-1)",
	},
	{
		Key:   "geometry",
		Label: "Hình học không gian",
		Text:  "Cho hình chóp S.ABCD có đáy ABCD là hình vuông cạnh a, SA vuông góc với mặt phẳng (ABCD) và SA = a. Tính thể tích khối chóp S.ABCD.",
	},
	{
		Key:   "trig",
		Label: "Lượng giác",
		Text:  "Giải phương trình lượng giác: 2sin(x) - 1 = 0",
	},
}

// SampleByKey returns the sample with the given key.
func SampleByKey(key string) (Sample, bool) {
	for _, s := range Samples {
		if s.Key == key {
			return s, true
		}
	}
	return Sample{}, false
}
