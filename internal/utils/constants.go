package utils

// ConfigFileName is the name of the local application configuration file.
const ConfigFileName = ".dirmap.yaml"

// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
const GlobalConfigDirectoryName = ".dirmap"

// GlobalConfigFileName is the name of the global application configuration file.
const GlobalConfigFileName = "config.yaml"
