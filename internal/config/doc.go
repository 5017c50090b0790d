// Package config loads and watches the stressgauge configuration file and
// input records.
//
// Top-level types:
//   - Config{Log, Engine, History, Defaults, Batch, Report} parsed from YAML
//   - LogConfig: level (debug|info|warn|error), format (json|text)
//   - EngineConfig: active_threshold, the display cut-off for "active" rules
//   - HistoryConfig: window size and the stable band used by the trend
//   - BatchConfig: worker count for bulk evaluation
//   - ReportConfig: default export format (json|xlsx|prom)
//
// Load(path) reads the YAML file, applies defaults (info/json logging, 0.3
// threshold, window 20, band 3, slider defaults 7/5/6/5, 4 workers, json
// reports), applies STRESSGAUGE_LOG_LEVEL and STRESSGAUGE_LOG_FORMAT from the
// environment, then validates. An empty path yields the defaults.
//
// LoadEnvFile loads a dotenv file into the process environment before Load
// runs, so the overrides above can live next to the config.
//
// LoadInputs(path) parses a single YAML input record; every one of the four
// fields must be present.
//
// Watch and WatchInputs use fsnotify to re-read a file on change and hand the
// new value to a callback. The path is re-added after every reload so an
// atomic save that replaces the inode keeps being watched.
package config
