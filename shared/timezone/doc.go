// Package timezone centralizes time handling in the configured application
// timezone. Stay dates (check-in/check-out) are date-only values and are
// parsed with Parse and constant.StayDateFormat so a booking made near
// midnight lands on the right day.
package timezone
