// Package timezone provides timezone utilities for the application.
//
// Appointment days and grid labels are wall-clock values of the workshop, so every
// calendar computation goes through this package instead of time.Local.
//
// Usage Examples:
//
//	now := timezone.Now()                      // current time in app timezone
//	today := timezone.Today()                  // midnight of the current day
//	day, err := timezone.ParseDay("2025-06-10") // calendar day in app timezone
//	label := timezone.FormatDay(day)           // "2025-06-10"
//
// The timezone is configured via the APP_TIMEZONE environment variable using IANA names
// such as "Europe/Budapest" or "UTC", and is initialized when the package is imported.
package timezone
