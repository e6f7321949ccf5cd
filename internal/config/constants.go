package config

// Base application details
const AppName = "tidemark"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tidemark.log"
const Version = "0.3.0"

// UI Layout
const StatusBarHeight = 1

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = false
const DefaultViewportMargin = 100
