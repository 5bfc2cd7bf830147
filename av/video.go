package av

// Rendition is one rung of the HLS ladder.
type Rendition struct {
	Name    string // appended to the output file name
	Bitrate int64  // QVBR ceiling in bits per second
	Quality int64  // QVBR quality level
	Width   int64
	Height  int64
}

type tier struct {
	bitrate, quality int64
	short, long      int64
}

// ladder is keyed by name modifier.
var ladder = map[string]tier{
	"_180":  {bitrate: 270000, quality: 7, short: 180, long: 320},
	"_720":  {bitrate: 2000000, quality: 7, short: 720, long: 1280},
	"_1080": {bitrate: 4000000, quality: 9, short: 1080, long: 1920},
}

var tierOrder = []string{"_180", "_720", "_1080"}

// Ladder returns the three renditions, lowest first. Vertical puts the
// short side first (180x320), horizontal the long side (320x180).
func Ladder(o Orientation) []Rendition {
	out := make([]Rendition, 0, len(tierOrder))
	for _, name := range tierOrder {
		t := ladder[name]
		r := Rendition{
			Name:    name,
			Bitrate: t.bitrate,
			Quality: t.quality,
			Width:   t.long,
			Height:  t.short,
		}
		if o == Vertical {
			r.Width, r.Height = t.short, t.long
		}
		out = append(out, r)
	}
	return out
}
