// Package msg prints colored console messages for the rellr CLI.
//
// Messages are rendered with lipgloss. Colors follow the terminal profile
// detected by termenv; WithNoColor forces plain text.
package msg
