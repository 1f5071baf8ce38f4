package config

import "github.com/tauraamui/bgswap/pkg/configdef"

type defaultSettingKey uint

const (
	SOURCETITLE       defaultSettingKey = 0x0
	SOURCEBACKEND     defaultSettingKey = 0x1
	SOURCEFPS         defaultSettingKey = 0x2
	SEGMENTERBACKEND  defaultSettingKey = 0x3
	SEGMENTERTIMEOUT  defaultSettingKey = 0x4
	SNAPSHOTEVERY     defaultSettingKey = 0x5
	STATSINTERVALSECS defaultSettingKey = 0x6
)

var defaultSettings = map[defaultSettingKey]interface{}{
	SOURCETITLE:       "default",
	SOURCEBACKEND:     configdef.SourceMock,
	SOURCEFPS:         30,
	SEGMENTERBACKEND:  configdef.SegmenterMock,
	SEGMENTERTIMEOUT:  250,
	SNAPSHOTEVERY:     30,
	STATSINTERVALSECS: 10,
}

func defaultValues() configdef.Values {
	values := configdef.Values{}
	applyDefaults(&values)
	return values
}

// applyDefaults only fills in zero values, anything set explicitly is left for validation.
func applyDefaults(values *configdef.Values) {
	if len(values.Source.Title) == 0 {
		values.Source.Title = defaultSettings[SOURCETITLE].(string)
	}
	if len(values.Source.Backend) == 0 {
		values.Source.Backend = defaultSettings[SOURCEBACKEND].(string)
	}
	if values.Source.FPS == 0 {
		values.Source.FPS = defaultSettings[SOURCEFPS].(int)
	}
	if len(values.Segmenter.Backend) == 0 {
		values.Segmenter.Backend = defaultSettings[SEGMENTERBACKEND].(string)
	}
	if values.Segmenter.TimeoutMS == 0 {
		values.Segmenter.TimeoutMS = defaultSettings[SEGMENTERTIMEOUT].(int)
	}
	if values.Output.SnapshotEvery == 0 {
		values.Output.SnapshotEvery = defaultSettings[SNAPSHOTEVERY].(int)
	}
	if values.StatsIntervalSecs == 0 {
		values.StatsIntervalSecs = defaultSettings[STATSINTERVALSECS].(int)
	}
}
