// Package domain defines core data models, contracts and error sentinels
// shared across the app. It contains plain types (records) and interfaces only.
package domain
