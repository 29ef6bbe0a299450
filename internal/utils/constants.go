package utils

// Well-known file and directory names used across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore file read at the repository root.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the name of the application configuration file.
	ConfigFileName = ".coderoller.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".coderoller"
	// FlattenedFileSuffix is appended to the repository name to form the output file name.
	FlattenedFileSuffix = ".flat.md"
)

// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal top-level errors.
const ApplicationExecutionFailedMessage = "application failed"
