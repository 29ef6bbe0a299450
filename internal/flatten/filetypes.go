package flatten

import "path/filepath"

// fileTypes maps file extensions (with the leading dot) to the language tag used
// on the fenced code block. Files whose extension is absent from this table are
// omitted from content emission but still appear in the tree view.
var fileTypes = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".jsx":   "jsx",
	".ts":    "typescript",
	".tsx":   "tsx",
	".swift": "swift",
	".go":    "go",
	".java":  "java",
	".c":     "c",
	".cpp":   "c++",
	".h":     "c",
	".hpp":   "c++",
	".cs":    "csharp",
	".lua":   "lua",
	".rb":    "ruby",
	".php":   "php",
	".pl":    "perl",
	".html":  "html",
	".css":   "css",
	".json":  "json",
	".toml":  "toml",
	".md":    "markdown",
	".yaml":  "yaml",
	".yml":   "yaml",
	".conf":  "config",
	".ini":   "ini",
	".sh":    "shell",
}

// LanguageTag returns the code-fence language tag for the file name's extension.
// The extension is the text after the last dot, including the dot itself.
func LanguageTag(fileName string) (string, bool) {
	extension := filepath.Ext(fileName)
	languageTag, known := fileTypes[extension]
	return languageTag, known
}
