package config

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tauraamui/bgswap/pkg/configdef"
	"github.com/tauraamui/bgswap/pkg/log"
)

type LoadConfigTestSuite struct {
	suite.Suite
	configResolver   configdef.Resolver
	fs               afero.Fs
	path             string
	configFile       afero.File
	resetConfigDir   func()
	logInfoRef       func(string, ...interface{})
	infoLogsReceived []string
}

func (suite *LoadConfigTestSuite) SetupSuite() {
	suite.fs = afero.NewMemMapFs()
	suite.configResolver = DefaultResolver()
	suite.resetConfigDir = overloadUserConfigDir("/home/test/.config", nil)

	// use in memory FS in implementation for tests
	fs = suite.fs

	suite.logInfoRef = log.Info
	log.Info = func(format string, a ...interface{}) {
		suite.infoLogsReceived = append(suite.infoLogsReceived, format)
	}
}

func (suite *LoadConfigTestSuite) TearDownSuite() {
	fs = afero.NewOsFs()
	suite.resetConfigDir()
	log.Info = suite.logInfoRef
}

func (suite *LoadConfigTestSuite) SetupTest() {
	path, err := resolveConfigPath()
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.fs.MkdirAll("/home/test/.config/tauraamui/bgswap", os.ModeDir|os.ModePerm))
	suite.path = path

	configFile, err := suite.fs.Create(path)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), configFile)

	suite.configFile = configFile

	// can be overridden this so reset it back before
	// each test to ensure that it's an opt in thing per
	// individual test
	suite.overwriteTestConfig(
		`{
			"debug": true,
			"stats_interval_secs": 5,
			"source": {"title": "FrontDesk", "backend": "mock", "fps": 15},
			"background": {"path": "/backgrounds/beach.png"},
			"segmenter": {"backend": "mock", "timeout_ms": 120},
			"output": {"snapshot_path": "/tmp/bgswap.jpg", "snapshot_every": 5}
		}`,
	)
}

func (suite *LoadConfigTestSuite) overwriteTestConfig(config string) {
	require.NoError(suite.T(), suite.configFile.Truncate(0))
	_, err := suite.configFile.Seek(0, 0)
	require.NoError(suite.T(), err)
	_, err = suite.configFile.WriteString(config)
	assert.NoError(suite.T(), err)
}

func (suite *LoadConfigTestSuite) TearDownTest() {
	require.NoError(suite.T(), suite.configFile.Close())
	suite.fs.Remove(suite.path)
	suite.infoLogsReceived = nil
}

func (suite *LoadConfigTestSuite) TestLoadConfig() {
	config, err := suite.configResolver.Resolve()
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), true, config.Debug)
	assert.Equal(suite.T(), 5, config.StatsIntervalSecs)
	assert.Equal(suite.T(), configdef.Source{Title: "FrontDesk", Backend: "mock", FPS: 15}, config.Source)
	assert.Equal(suite.T(), "/backgrounds/beach.png", config.Background.Path)
	assert.Equal(suite.T(), 120, config.Segmenter.TimeoutMS)
	assert.Equal(suite.T(), configdef.Output{SnapshotPath: "/tmp/bgswap.jpg", SnapshotEvery: 5}, config.Output)
	assert.Contains(suite.T(), suite.infoLogsReceived, "Resolved config file location: %s")
}

func (suite *LoadConfigTestSuite) TestLoadEmptyConfigAppliesDefaults() {
	suite.overwriteTestConfig(`{}`)

	config, err := suite.configResolver.Resolve()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), defaultValues(), config)
}

func (suite *LoadConfigTestSuite) TestConfigLoadFailsOnInvalidJSON() {
	suite.overwriteTestConfig(`{"debug" true,}`)

	config, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	require.Empty(suite.T(), config)
	assert.EqualError(suite.T(), err, "parsing configuration error: invalid character 't' after object key")
}

func (suite *LoadConfigTestSuite) TestConfigLoadFailsValidationOnFPSOutOfRange() {
	suite.overwriteTestConfig(`{"source": {"fps": 240}}`)

	config, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	require.Empty(suite.T(), config)
	assert.EqualError(suite.T(), err, `Validation error in field "FPS" of type "int" using validator "lte=60"`)
}

func (suite *LoadConfigTestSuite) TestConfigLoadFailsValidationOnOpenCVWithoutModel() {
	suite.overwriteTestConfig(`{"segmenter": {"backend": "opencv"}}`)

	config, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	require.Empty(suite.T(), config)
	assert.EqualError(suite.T(), err, "validation failed: opencv segmenter requires a model path")
}

func (suite *LoadConfigTestSuite) TestConfigLoadFailsWhenFileMissing() {
	require.NoError(suite.T(), suite.fs.Remove(suite.path))

	config, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	require.Empty(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "unable to read from path /home/test/.config/tauraamui/bgswap/config.json")
}

func TestLoadConfigTestSuite(t *testing.T) {
	suite.Run(t, &LoadConfigTestSuite{})
}
