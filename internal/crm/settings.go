package crm

// CompanySettings holds the company profile.
type CompanySettings struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// LocalizationSettings holds language, currency and timezone.
type LocalizationSettings struct {
	Language string `json:"language"`
	Currency string `json:"currency"`
	Timezone string `json:"timezone"`
}

// FieldSettings toggles optional customer fields.
type FieldSettings struct {
	Notes       bool `json:"notes"`
	Tags        bool `json:"tags"`
	Birthday    bool `json:"birthday"`
	SocialMedia bool `json:"socialMedia"`
}

// NotificationSettings toggles user notifications.
type NotificationSettings struct {
	Email    bool `json:"email"`
	Browser  bool `json:"browser"`
	LowStock bool `json:"lowStock"`
	Birthday bool `json:"birthday"`
}

// SecuritySettings holds the security toggles.
type SecuritySettings struct {
	SessionTimeout   int  `json:"sessionTimeout"`
	MaxLoginAttempts int  `json:"maxLoginAttempts"`
	DataEncryption   bool `json:"dataEncryption"`
	AuditLog         bool `json:"auditLog"`
}

// BackupSettings controls automatic backups.
type BackupSettings struct {
	AutoBackup string `json:"autoBackup"` // daily, weekly, monthly or disabled
	Retention  int    `json:"retention"`  // days
}

// PerformanceSettings holds performance knobs.
type PerformanceSettings struct {
	CacheSize        int  `json:"cacheSize"`
	MaxSearchResults int  `json:"maxSearchResults"`
	LazyLoading      bool `json:"lazyLoading"`
	Compression      bool `json:"compression"`
}

// DeveloperSettings holds developer toggles.
type DeveloperSettings struct {
	DebugMode             bool `json:"debugMode"`
	ConsoleLogs           bool `json:"consoleLogs"`
	PerformanceMonitoring bool `json:"performanceMonitoring"`
}

// ExportSettings holds export preferences.
type ExportSettings struct {
	Format   string `json:"format"`
	Encoding string `json:"encoding"`
}

// ImportSettings holds import preferences.
type ImportSettings struct {
	Validation        string `json:"validation"`
	DuplicateHandling string `json:"duplicateHandling"`
}

// Settings is the singleton nested configuration document.
type Settings struct {
	Company       CompanySettings      `json:"company"`
	Localization  LocalizationSettings `json:"localization"`
	Categories    []string             `json:"categories"`
	Fields        FieldSettings        `json:"fields"`
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
	Backup        BackupSettings       `json:"backup"`
	Performance   PerformanceSettings  `json:"performance"`
	Developer     DeveloperSettings    `json:"developer"`
	Export        ExportSettings       `json:"export"`
	Import        ImportSettings       `json:"import"`
}

// DefaultSettings returns the hard-coded first-run settings.
func DefaultSettings() Settings {
	return Settings{
		Company: CompanySettings{},
		Localization: LocalizationSettings{
			Language: "en",
			Currency: "USD",
			Timezone: "UTC",
		},
		Categories: []string{"Regular", "VIP", "Premium", "Wholesale", "Corporate"},
		Fields: FieldSettings{
			Notes: true,
			Tags:  true,
		},
		Notifications: NotificationSettings{
			Email:   true,
			Browser: true,
		},
		Security: SecuritySettings{
			SessionTimeout:   30,
			MaxLoginAttempts: 5,
			DataEncryption:   true,
			AuditLog:         true,
		},
		Backup: BackupSettings{
			AutoBackup: "weekly",
			Retention:  30,
		},
		Performance: PerformanceSettings{
			CacheSize:        100,
			MaxSearchResults: 100,
			LazyLoading:      true,
			Compression:      true,
		},
		Developer: DeveloperSettings{},
		Export: ExportSettings{
			Format:   "json",
			Encoding: "utf8",
		},
		Import: ImportSettings{
			Validation:        "moderate",
			DuplicateHandling: "skip",
		},
	}
}
