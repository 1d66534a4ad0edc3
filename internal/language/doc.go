// Package language normalizes the language codes that appear in
// configuration, container stream tags and whisper command lines.
package language
