package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimestampFormat is used for backup file names
	TimestampFormat = "20060102-1504"
)
