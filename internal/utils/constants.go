package utils

// ConfigFileName is the cognitus configuration file name.
const ConfigFileName = ".cognitus.yaml"

// GlobalConfigDirectoryName is the per-user configuration directory under HOME.
const GlobalConfigDirectoryName = ".cognitus"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage prefixes fatal command failures.
const ApplicationExecutionFailedMessage = "application execution failed"
