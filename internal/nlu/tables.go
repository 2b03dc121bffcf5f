package nlu

// appAliases is walked top to bottom during resolution and the first
// containment hit wins, so the order here is part of the contract.
var appAliases = []string{
	"chrome", "google chrome", "firefox", "edge", "microsoft edge", "browser",
	"notepad", "notepad++", "code", "visual studio code", "vs code",
	"calculator", "calc", "paint", "mspaint", "word", "excel", "powerpoint",
	"spotify", "discord", "steam", "vlc", "media player",
	"settings", "control panel", "task manager", "cmd", "command prompt",
	"powershell", "explorer", "file explorer", "windows explorer",
}

// launchIDs maps a resolved app name to what the launcher should start.
// Missing entries launch under their own name.
var launchIDs = map[string]string{
	// Browsers
	"chrome":         "chrome",
	"google chrome":  "chrome",
	"firefox":        "firefox",
	"edge":           "msedge",
	"microsoft edge": "msedge",
	"browser":        "msedge",

	// Editors
	"notepad":            "notepad",
	"notepad++":          "notepad++",
	"code":               "code",
	"visual studio code": "code",
	"vs code":            "code",

	// System tools
	"calculator":       "calc",
	"calc":             "calc",
	"paint":            "mspaint",
	"mspaint":          "mspaint",
	"settings":         "ms-settings:",
	"control panel":    "control",
	"task manager":     "taskmgr",
	"cmd":              "cmd",
	"command prompt":   "cmd",
	"powershell":       "powershell",
	"explorer":         "explorer",
	"file explorer":    "explorer",
	"windows explorer": "explorer",

	// Office
	"word":       "winword",
	"excel":      "excel",
	"powerpoint": "powerpnt",
}

// processIDs maps a resolved app name to the process name handed to the
// terminator. Missing entries terminate under their own name.
var processIDs = map[string]string{
	"chrome":             "chrome",
	"google chrome":      "chrome",
	"firefox":            "firefox",
	"edge":               "msedge",
	"microsoft edge":     "msedge",
	"notepad":            "notepad",
	"notepad++":          "notepad++",
	"code":               "code",
	"visual studio code": "code",
	"vs code":            "code",
	"calculator":         "calculator",
	"calc":               "calculator",
	"paint":              "mspaint",
	"mspaint":            "mspaint",
	"word":               "winword",
	"excel":              "excel",
	"powerpoint":         "powerpnt",
	"spotify":            "spotify",
	"discord":            "discord",
	"steam":              "steam",
	"vlc":                "vlc",
	"settings":           "systemsettings",
	"cmd":                "cmd",
	"command prompt":     "cmd",
	"powershell":         "powershell",
}

// folderDirs maps spoken folder names to locations under the home
// directory. "home" maps to the home directory itself.
var folderDirs = map[string]string{
	"downloads": "Downloads",
	"documents": "Documents",
	"pictures":  "Pictures",
	"music":     "Music",
	"videos":    "Videos",
	"desktop":   "Desktop",
	"home":      "",
}
