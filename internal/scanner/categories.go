package scanner

// JunkLocation is a well-known directory whose contents are safe to remove
type JunkLocation struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Icon        string `mapstructure:"icon" yaml:"icon"`
	Description string `mapstructure:"description" yaml:"description"`
	Path        string `mapstructure:"path" yaml:"path"`
	// Whole reports the directory as one item instead of one item per child
	Whole bool `mapstructure:"whole" yaml:"whole"`
}

// DefaultJunkLocations is the built-in catalog
func DefaultJunkLocations() []JunkLocation {
	return []JunkLocation{
		{
			Name:        "Xcode DerivedData",
			Icon:        "🔨",
			Description: "Build artifacts and intermediate files",
			Path:        "~/Library/Developer/Xcode/DerivedData",
		},
		{
			Name:        "Xcode Archives",
			Icon:        "🗄️",
			Description: "Old app archives for distribution",
			Path:        "~/Library/Developer/Xcode/Archives",
		},
		{
			Name:        "Xcode Device Support",
			Icon:        "📱",
			Description: "iOS device debug symbols",
			Path:        "~/Library/Developer/Xcode/iOS DeviceSupport",
		},
		{
			Name:        "User Caches",
			Icon:        "🗃️",
			Description: "Application cache files",
			Path:        "~/Library/Caches",
		},
		{
			Name:        "System Logs",
			Icon:        "📄",
			Description: "Application and system log files",
			Path:        "~/Library/Logs",
		},
		{
			Name:        "Safari Cache",
			Icon:        "🧭",
			Description: "Safari browser cache",
			Path:        "~/Library/Caches/com.apple.Safari",
		},
		{
			Name:        "Chrome Cache",
			Icon:        "🌐",
			Description: "Google Chrome browser cache",
			Path:        "~/Library/Caches/Google/Chrome",
		},
		{
			Name:        "Homebrew Cache",
			Icon:        "🍺",
			Description: "Downloaded package files",
			Path:        "~/Library/Caches/Homebrew",
		},
	}
}

// ExtendedJunkLocations covers developer tool caches outside the default catalog
func ExtendedJunkLocations() []JunkLocation {
	return []JunkLocation{
		{
			Name:        "Go Build Cache",
			Icon:        "🐹",
			Description: "Compiled Go packages",
			Path:        "~/Library/Caches/go-build",
			Whole:       true,
		},
		{
			Name:        "NPM Cache",
			Icon:        "📦",
			Description: "Downloaded npm tarballs",
			Path:        "~/.npm/_cacache",
			Whole:       true,
		},
		{
			Name:        "Yarn Cache",
			Icon:        "🧶",
			Description: "Downloaded Yarn packages",
			Path:        "~/Library/Caches/Yarn",
		},
		{
			Name:        "Pip Cache",
			Icon:        "🐍",
			Description: "Downloaded Python wheels",
			Path:        "~/Library/Caches/pip",
		},
		{
			Name:        "CocoaPods Cache",
			Icon:        "🥥",
			Description: "Downloaded pod specs and sources",
			Path:        "~/Library/Caches/CocoaPods",
		},
		{
			Name:        "Gradle Caches",
			Icon:        "🐘",
			Description: "Gradle dependency and build caches",
			Path:        "~/.gradle/caches",
		},
	}
}
